package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mira-dev/mira/shared/logger"
)

// RequestLogger copies chi's request id into the logging context, so backend calls made
// while serving r carry the same X-Request-ID, and logs one line per request.
// It must run after chimw.RequestID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRequestID(r.Context(), chimw.GetReqID(r.Context()))
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log := logger.FromContext(ctx)
		attrs := []any{"method", r.Method, "path", r.URL.Path, "status", status, "duration", time.Since(start)}
		if status >= http.StatusInternalServerError {
			log.Error("request", attrs...)
			return
		}
		log.Debug("request", attrs...)
	})
}
