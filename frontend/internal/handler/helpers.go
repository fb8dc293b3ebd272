package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/frontend/internal/forms"
	"github.com/mira-dev/mira/shared/domain"
	internal_errors "github.com/mira-dev/mira/shared/errors"
	"github.com/mira-dev/mira/shared/logger"
	mw "github.com/mira-dev/mira/shared/middleware"
	"github.com/mira-dev/mira/shared/utils"
)

const msgBackendUnavailable = "Internal error: backend unavailable."

// session builds the backend session for the current request.
func session(r *http.Request) apiclient.Session {
	var uid domain.UserId
	if u := mw.GetUserFromContext(r); u != nil {
		uid = u.Id
	}
	return apiclient.SessionFromRequest(r, uid)
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	h.Flash.Error(r.Context(), msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) redirectWithSuccess(w http.ResponseWriter, r *http.Request, target, msg string) {
	h.Flash.Success(r.Context(), msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// userMessage is what a failed backend call looks like to the user.
func userMessage(err error) string {
	if apiclient.KindOf(err) == apiclient.KindNetwork {
		return msgBackendUnavailable
	}
	return apiclient.HandleErrors(err).Error()
}

// writeBackendError answers a page request whose main entity could not be loaded.
func writeBackendError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case apiclient.IsStatus(err, http.StatusNotFound):
		utils.WriteErrorAndStatusCode(w, internal_errors.NotFound(what+" not found"))
	case apiclient.IsStatus(err, http.StatusForbidden):
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: "Access denied", StatusCode: http.StatusForbidden})
	default:
		logger.FromContext(r.Context()).Error("loading page data", "what", what, "error", err)
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: userMessage(err), StatusCode: http.StatusBadGateway})
	}
}

// validationState turns a rejected form submission into template state. Local validator
// failures and backend 422 payloads are handled alike; ok is false for any other error.
func validationState(err error, values forms.Values) (forms.State, bool) {
	state := forms.State{Values: values}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			state.Errors = state.Errors.Add(fieldName(fe), fieldMessage(fe))
		}
		return state, true
	}

	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnprocessableEntity {
		state.Message, state.Errors = forms.ParseFieldErrors(httpErr.Body)
		if state.Message == "" && len(state.Errors) == 0 {
			state.Message = httpErr.ServerMessage()
		}
		return state, true
	}
	return state, false
}

// fieldName maps a request struct field to its form input name.
func fieldName(fe validator.FieldError) string {
	var b strings.Builder
	for i, c := range fe.Field() {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteRune(c)
	}
	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Wajib diisi."
	case "email":
		return "Format email tidak valid."
	case "min":
		return "Minimal " + fe.Param() + " karakter."
	case "max":
		return "Maksimal " + fe.Param() + "."
	case "eqfield":
		return "Konfirmasi tidak cocok."
	case "gte", "lte":
		return "Nilai di luar batas."
	default:
		return "Tidak valid."
	}
}

func splitAndTrim(input string) []string {
	var result []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.BadRequest("invalid " + name)
	}
	return id, nil
}

// safeReturnPath accepts only local absolute paths.
func safeReturnPath(p, fallback string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}

// parseForm answers 400 itself when the body cannot be parsed.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.BadRequest("Invalid form data"))
		return false
	}
	return true
}
