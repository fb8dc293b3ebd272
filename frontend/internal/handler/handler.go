package handler

import (
	"html/template"
	"net/http"
	"time"

	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/frontend/internal/dialog"
	"github.com/mira-dev/mira/frontend/internal/flash"
	"github.com/mira-dev/mira/frontend/internal/markdown"
	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/shared/config"
)

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public
	Markdown  *markdown.Renderer
	APIClient *apiclient.APIClient
	Flash     *flash.Store
	InFlight  *dialog.InFlight
	Location  *time.Location
}

func New(templates map[string]*template.Template, publicCfg config.Public, md *markdown.Renderer, apiClient *apiclient.APIClient, flashes *flash.Store) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		Markdown:  md,
		APIClient: apiClient,
		Flash:     flashes,
		InFlight:  dialog.NewInFlight(),
		Location:  publicCfg.Location(),
	}
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	tmpl, ok := h.Templates[name]
	return tmpl, ok
}

func IndexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routes.Forums, http.StatusFound)
}
