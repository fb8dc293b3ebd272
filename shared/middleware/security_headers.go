package middleware

import (
	"net/http"
	"strings"
)

const (
	// PageCSP allows the service's own assets plus the inline styles the templates use.
	PageCSP = "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'; form-action 'self'"
	// APICSP is for JSON answers, which never load anything.
	APICSP = "default-src 'none'; frame-ancestors 'none'"
)

// SecurityHeaders configures the headers added to every answer. Paths under APIPrefix get
// APICSP and are marked uncacheable, since they carry per-user data.
type SecurityHeaders struct {
	HTTPS     bool
	PageCSP   string
	APICSP    string
	APIPrefix string
}

func (s SecurityHeaders) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		csp := s.PageCSP
		if s.APIPrefix != "" && strings.HasPrefix(r.URL.Path, s.APIPrefix) {
			csp = s.APICSP
			headers.Set("Cache-Control", "no-store")
		}
		if csp != "" {
			headers.Set("Content-Security-Policy", csp)
		}
		if s.HTTPS {
			headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
