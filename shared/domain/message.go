package domain

import "time"

type DirectMessage struct {
	Id         int64     `json:"id" validate:"required,gt=0"`
	SenderId   UserId    `json:"sender_id" validate:"required,gt=0"`
	ReceiverId UserId    `json:"receiver_id" validate:"required,gt=0"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// Conversation is one entry of the chat sidebar.
type Conversation struct {
	Partner       User      `json:"user" validate:"required"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count" validate:"gte=0"`
}
