package frontend_domain

import "github.com/mira-dev/mira/shared/domain"

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error            string
	Success          string
	User             *domain.User
	Validation       ValidationData
	CSRFToken        string // CSRF token for form submissions
	EmailPlaceholder string // Pre-filled email for auth forms (from cookie, not URL)
	Path             string // Current path, for highlighting the active nav entry
}

// ValidationData holds the limits templates show next to inputs.
type ValidationData struct {
	PasswordMinLen      int
	JoinMessageMaxLen   int
	ForumTitleMaxLen    int
	ForumMaxTags        int
	CollabMaxMembersMin int
	CollabMaxMembersMax int
}
