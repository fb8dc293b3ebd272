package frontend_domain

import (
	"html/template"

	"github.com/mira-dev/mira/frontend/internal/filters"
	"github.com/mira-dev/mira/frontend/internal/forms"
	"github.com/mira-dev/mira/frontend/internal/view"
	"github.com/mira-dev/mira/shared/domain"
)

type ForumListPageData struct {
	Filters    filters.State
	Sorts      []filters.Option
	Categories []filters.Option
	Cards      view.List[view.ForumCard]
	LoadError  string
	// ResetURL and ClearSearchURL are empty when there is nothing to clear.
	ResetURL       string
	ClearSearchURL string
}

type ForumPageData struct {
	Forum       domain.ForumPost
	Description template.HTML
	Tags        []string
	Category    string
	CreatedAt   string
	Author      string
	Comments    []Comment
	EmptyText   string
}

type ForumCreatePageData struct {
	Form       forms.State
	Categories []filters.Option
}

type CollaborationListPageData struct {
	Table     view.List[view.CollabRow]
	LoadError string
}

type CollaborationPageData struct {
	Collaboration domain.Collaboration
	Row           view.CollabRow
	Description   template.HTML
	Members       []string
	IsOwner       bool
	Join          JoinDialogData
	Message       SendMessageDialogData
}

type CollaborationCreatePageData struct {
	Form forms.State
}

type ChatPageData struct {
	Tab      string
	Sidebar  view.List[view.ChatEntry]
	Partner  *domain.User
	Messages []ChatMessage
	Empty    string
	Dialog   SendMessageDialogData
	ReturnTo string
}

type ProfilePageData struct {
	User           *domain.User
	Collabs        view.List[view.CollabRow]
	Comments       view.List[view.CommentRow]
	Forums         view.List[view.ForumRow]
	OngoingCollabs view.List[view.OngoingCollab]
}

type AuthPageData struct {
	Form forms.State
}
