package handler

import (
	"errors"
	"net/http"

	"github.com/mira-dev/mira/frontend/internal/apiclient"
	frontend_domain "github.com/mira-dev/mira/frontend/internal/domain"
	"github.com/mira-dev/mira/frontend/internal/forms"
	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/logger"
	mw "github.com/mira-dev/mira/shared/middleware"
	"github.com/mira-dev/mira/shared/utils"
)

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", frontend_domain.AuthPageData{})
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	values := forms.FormValues(r.PostForm, "email")
	req := api.LoginRequest{
		Email:    values.Get("email"),
		Password: r.PostFormValue("password"),
		Remember: r.PostFormValue("remember") != "",
	}

	err := utils.Validate.Struct(req)
	var cookies []*http.Cookie
	if err == nil {
		cookies, err = h.APIClient.Login(r.Context(), session(r), req)
	}
	if err != nil {
		if state, ok := validationState(err, values); ok {
			h.renderTemplateWithStatus(w, r, http.StatusUnprocessableEntity, "login.html", frontend_domain.AuthPageData{Form: state})
			return
		}
		logger.FromContext(r.Context()).Info("login rejected", "kind", apiclient.KindOf(err).String())
		h.Flash.Email(r.Context(), req.Email)
		h.redirectWithError(w, r, routes.Login, loginFailureMessage(err))
		return
	}

	// Success: forward the session cookies the backend set to the browser.
	for _, cookie := range cookies {
		http.SetCookie(w, cookie)
	}
	http.Redirect(w, r, routes.Forums, http.StatusSeeOther)
}

func loginFailureMessage(err error) string {
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode < http.StatusInternalServerError {
		return httpErr.ServerMessage()
	}
	return userMessage(err)
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", frontend_domain.AuthPageData{})
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	values := forms.FormValues(r.PostForm, "name", "email")
	req := api.RegisterRequest{
		Name:                 values.Get("name"),
		Email:                values.Get("email"),
		Password:             r.PostFormValue("password"),
		PasswordConfirmation: r.PostFormValue("password_confirmation"),
	}

	err := utils.Validate.Struct(req)
	var cookies []*http.Cookie
	if err == nil {
		cookies, err = h.APIClient.Register(r.Context(), session(r), req)
	}
	if err != nil {
		if state, ok := validationState(err, values); ok {
			h.renderTemplateWithStatus(w, r, http.StatusUnprocessableEntity, "register.html", frontend_domain.AuthPageData{Form: state})
			return
		}
		logger.FromContext(r.Context()).Warn("registration failed", "error", err)
		h.redirectWithError(w, r, routes.Register, loginFailureMessage(err))
		return
	}

	loggedIn := false
	for _, cookie := range cookies {
		http.SetCookie(w, cookie)
		if cookie.Name == mw.AccessTokenCookie && cookie.Value != "" {
			loggedIn = true
		}
	}
	if loggedIn {
		h.redirectWithSuccess(w, r, routes.Forums, "Selamat datang di Mira!")
		return
	}
	h.Flash.Email(r.Context(), req.Email)
	h.redirectWithSuccess(w, r, routes.Login, "Pendaftaran berhasil. Silakan masuk.")
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.APIClient.Logout(r.Context(), session(r)); err != nil {
		logger.FromContext(r.Context()).Warn("backend logout failed", "error", err)
	}
	mw.ClearAccessToken(w, h.Public.SecureCookies)
	http.Redirect(w, r, routes.Login, http.StatusSeeOther)
}
