package middleware

import (
	"net/http"

	"github.com/mira-dev/mira/frontend/internal/flash"
	mw "github.com/mira-dev/mira/shared/middleware"
)

const loginPath = "/login"

// Auth wraps shared auth middleware with redirect behavior for pages.
type Auth struct {
	sharedAuth *mw.Auth
	flash      *flash.Store
}

// NewAuth needs the flash store's middleware to run before it.
func NewAuth(sharedAuth *mw.Auth, flashes *flash.Store) *Auth {
	return &Auth{
		sharedAuth: sharedAuth,
		flash:      flashes,
	}
}

// NeedAuth redirects anonymous visitors to the login page with a flash message.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.wrapWithRedirect(a.sharedAuth.NeedAuth())
}

// NeedAuthJSON answers 401 instead of redirecting; for JSON endpoints.
func (a *Auth) NeedAuthJSON() func(http.Handler) http.Handler {
	return a.sharedAuth.NeedAuth()
}

// OptionalAuth populates the user when a valid session exists.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return a.sharedAuth.OptionalAuth()
}

// authRedirectWriter intercepts 401 answers from the shared middleware and redirects.
type authRedirectWriter struct {
	http.ResponseWriter
	request    *http.Request
	flash      *flash.Store
	redirected bool
}

func (w *authRedirectWriter) WriteHeader(statusCode int) {
	if w.redirected {
		return
	}
	if statusCode == http.StatusUnauthorized {
		w.redirected = true
		w.flash.Error(w.request.Context(), "Silakan masuk untuk melanjutkan.")
		http.Redirect(w.ResponseWriter, w.request, loginPath, http.StatusSeeOther)
		return
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *authRedirectWriter) Write(data []byte) (int, error) {
	if w.redirected {
		return len(data), nil
	}
	return w.ResponseWriter.Write(data)
}

func (a *Auth) wrapWithRedirect(authMiddleware func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		protected := authMiddleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &authRedirectWriter{
				ResponseWriter: w,
				request:        r,
				flash:          a.flash,
			}
			protected.ServeHTTP(wrapper, r)
		})
	}
}
