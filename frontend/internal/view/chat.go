package view

import (
	"time"

	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/shared/domain"
)

type ChatEntry struct {
	UserID      domain.UserId
	Name        string
	Avatar      string
	LastMessage string
	LastAt      string
	Unread      int
	URL         string
	Selected    bool
}

// NewChatSidebar lists conversations and marks the one with selectedUserID, if any.
func NewChatSidebar(convs []domain.Conversation, selectedUserID domain.UserId, loc *time.Location) List[ChatEntry] {
	return newList(convs, EmptyConversations, func(c domain.Conversation) ChatEntry {
		return ChatEntry{
			UserID:      c.Partner.Id,
			Name:        c.Partner.DisplayName(),
			Avatar:      c.Partner.Avatar,
			LastMessage: excerpt(c.LastMessage, 60),
			LastAt:      FormatDate(c.LastMessageAt, loc),
			Unread:      c.UnreadCount,
			URL:         routes.PersonalChat(c.Partner.Id),
			Selected:    selectedUserID != 0 && c.Partner.Id == selectedUserID,
		}
	})
}

type ChatMessage struct {
	ID     int64
	Text   string
	Mine   bool
	SentAt string
}

const timeLayout = "02 Jan 2006 15:04"

// NewChatMessages renders a thread from the point of view of viewerID.
func NewChatMessages(msgs []domain.DirectMessage, viewerID domain.UserId, loc *time.Location) List[ChatMessage] {
	if loc == nil {
		loc = time.UTC
	}
	return newList(msgs, EmptyMessages, func(m domain.DirectMessage) ChatMessage {
		sent := "-"
		if !m.CreatedAt.IsZero() {
			sent = m.CreatedAt.In(loc).Format(timeLayout)
		}
		return ChatMessage{
			ID:     m.Id,
			Text:   m.Message,
			Mine:   m.SenderId == viewerID,
			SentAt: sent,
		}
	})
}
