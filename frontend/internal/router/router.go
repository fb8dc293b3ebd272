package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mira-dev/mira/frontend/internal/handler"
	fmw "github.com/mira-dev/mira/frontend/internal/middleware"
	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/frontend/internal/setup"
	"github.com/mira-dev/mira/frontend/static"
	mw "github.com/mira-dev/mira/shared/middleware"
	"github.com/mira-dev/mira/shared/middleware/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(deps *setup.Dependencies) http.Handler {
	h := deps.Handler
	auth := fmw.NewAuth(mw.NewAuth(deps.Jwt, deps.Public.SecureCookies), h.Flash)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(fmw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders{
		HTTPS:     deps.Public.SecureCookies,
		PageCSP:   mw.PageCSP,
		APICSP:    mw.APICSP,
		APIPrefix: "/api/",
	}.Middleware)

	r.Get("/healthz", h.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS()))))

	// JSON proxies for client-side fetches; no flash session, no page CSRF
	r.Route("/api/profile", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.Public.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(auth.NeedAuthJSON())
		r.Get("/{kind}", h.ProfileListAPIHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.Flash.Middleware)
		r.Use(fmw.GenerateCSRFToken(fmw.CSRFConfig{SecureCookies: deps.Public.SecureCookies}))
		r.Use(fmw.ValidateCSRFToken())

		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth())
			r.Get(routes.Home, handler.IndexHandler)
			r.Get(routes.Forums, h.ForumListGetHandler)
			r.Get(routes.Collaborations, h.CollaborationListGetHandler)
			r.Get(routes.Login, h.LoginGetHandler)
			r.Post(routes.Login, h.LoginPostHandler)
			r.Get(routes.Register, h.RegisterGetHandler)
			r.Post(routes.Register, h.RegisterPostHandler)
			r.Post(routes.Logout, h.LogoutHandler)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.NeedAuth())
			r.Get(routes.ForumCreate, h.ForumCreateGetHandler)
			r.Post(routes.ForumCreate, h.ForumCreatePostHandler)
			r.Get(routes.CollabCreate, h.CollaborationCreateGetHandler)
			r.Post(routes.CollabCreate, h.CollaborationCreatePostHandler)
			r.Post(routes.Collaborations+"/{id}/join", h.CollaborationJoinPostHandler)
			r.Get(routes.Messages, h.ChatGetHandler)
			r.Post(routes.DirectMessages, h.DirectMessagePostHandler)
			r.Get(routes.Profile, h.ProfileGetHandler)
		})

		// Detail pages are public but personalised when signed in
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth())
			r.Get(routes.Forums+"/{slug}", h.ForumGetHandler)
			r.Get(routes.Collaborations+"/{id}", h.CollaborationGetHandler)
		})
	})

	return r
}
