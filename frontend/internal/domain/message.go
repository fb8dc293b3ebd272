package frontend_domain

import (
	"html/template"

	"github.com/mira-dev/mira/frontend/internal/view"
)

// ChatMessage wraps the view row with its rendered body.
type ChatMessage struct {
	view.ChatMessage
	HTML template.HTML
}

// Comment is a forum comment ready for the detail page.
type Comment struct {
	Author    string
	CreatedAt string
	HTML      template.HTML
}
