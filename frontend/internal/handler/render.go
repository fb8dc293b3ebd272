package handler

import (
	"bytes"
	"fmt"
	"net/http"

	frontend_domain "github.com/mira-dev/mira/frontend/internal/domain"
	"github.com/mira-dev/mira/frontend/internal/middleware"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/logger"
	mw "github.com/mira-dev/mira/shared/middleware"
)

const (
	passwordMinLen      = 8
	forumTitleMaxLen    = 255
	forumMaxTags        = 10
	collabMaxMembersMin = 2
	collabMaxMembersMax = 50
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

// initCommonTemplateData consumes the pending flash messages, so call it once per render.
func (h *Handler) initCommonTemplateData(r *http.Request) frontend_domain.CommonTemplateData {
	ctx := r.Context()
	return frontend_domain.CommonTemplateData{
		Error:            h.Flash.PopError(ctx),
		Success:          h.Flash.PopSuccess(ctx),
		User:             mw.GetUserFromContext(r),
		CSRFToken:        middleware.GetCSRFTokenFromContext(r),
		EmailPlaceholder: h.Flash.PopEmail(ctx),
		Path:             r.URL.Path,
		Validation: frontend_domain.ValidationData{
			PasswordMinLen:      passwordMinLen,
			JoinMessageMaxLen:   api.MaxJoinMessageLen,
			ForumTitleMaxLen:    forumTitleMaxLen,
			ForumMaxTags:        forumMaxTags,
			CollabMaxMembersMin: collabMaxMembersMin,
			CollabMaxMembersMax: collabMaxMembersMax,
		},
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithStatus(w, r, http.StatusOK, name, data)
}

func (h *Handler) renderTemplateWithStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(r),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.FromContext(r.Context()).Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
