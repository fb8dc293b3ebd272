// Package flash keeps one-time messages and unsent dialog drafts between a form post and
// the page it redirects to.
package flash

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

const (
	CookieName = "mira_session"

	keyError   = "flash_error"
	keySuccess = "flash_success"
	keyEmail   = "flash_email"
	keyDraft   = "draft:"
)

type Store struct {
	sessions *scs.SessionManager
}

// New keeps sessions in process memory. lifetime bounds how long an unread message lives.
func New(secureCookies bool, lifetime time.Duration) *Store {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Persist = false
	return &Store{sessions: sm}
}

// Middleware loads the session before the handler runs and saves it afterwards.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return s.sessions.LoadAndSave(next)
}

func (s *Store) Error(ctx context.Context, msg string)   { s.sessions.Put(ctx, keyError, msg) }
func (s *Store) Success(ctx context.Context, msg string) { s.sessions.Put(ctx, keySuccess, msg) }
func (s *Store) Email(ctx context.Context, email string) { s.sessions.Put(ctx, keyEmail, email) }

func (s *Store) PopError(ctx context.Context) string   { return s.sessions.PopString(ctx, keyError) }
func (s *Store) PopSuccess(ctx context.Context) string { return s.sessions.PopString(ctx, keySuccess) }
func (s *Store) PopEmail(ctx context.Context) string   { return s.sessions.PopString(ctx, keyEmail) }

// Draft stores the text of a dialog whose submission failed, so the dialog reopens with it.
func (s *Store) Draft(ctx context.Context, dialog, text string) {
	if text == "" {
		s.sessions.Remove(ctx, keyDraft+dialog)
		return
	}
	s.sessions.Put(ctx, keyDraft+dialog, text)
}

func (s *Store) PopDraft(ctx context.Context, dialog string) string {
	return s.sessions.PopString(ctx, keyDraft+dialog)
}
