package handler

import (
	"fmt"
	"net/http"
	"strconv"

	frontend_domain "github.com/mira-dev/mira/frontend/internal/domain"
	"github.com/mira-dev/mira/frontend/internal/dialog"
	"github.com/mira-dev/mira/frontend/internal/forms"
	"github.com/mira-dev/mira/frontend/internal/markdown"
	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/frontend/internal/view"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/logger"
	mw "github.com/mira-dev/mira/shared/middleware"
	"github.com/mira-dev/mira/shared/utils"
)

var collabFormFields = []string{"title", "description", "max_members"}

func joinDraftKey(id int64) string { return fmt.Sprintf("join:%d", id) }
func messageDraftKey(uid int64) string { return fmt.Sprintf("dm:%d", uid) }

func (h *Handler) CollaborationListGetHandler(w http.ResponseWriter, r *http.Request) {
	var data frontend_domain.CollaborationListPageData

	collabs, err := h.APIClient.ListCollaborations(r.Context(), session(r))
	if err != nil {
		logger.FromContext(r.Context()).Warn("listing collaborations", "error", err)
		data.LoadError = userMessage(err)
	}
	data.Table = view.NewCollabsTable(collabs, h.Location)

	h.renderTemplate(w, r, "collaborations.html", data)
}

func (h *Handler) CollaborationGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	collab, err := h.APIClient.GetCollaboration(r.Context(), session(r), id)
	if err != nil {
		writeBackendError(w, r, err, "collaboration")
		return
	}

	row := view.NewCollabRow(collab, h.Location)
	data := frontend_domain.CollaborationPageData{
		Collaboration: collab,
		Row:           row,
		Description:   h.Markdown.Render(collab.Description, markdown.Full),
		Members:       view.NewOngoingCollab(collab).Members,
	}

	if user := mw.GetUserFromContext(r); user != nil {
		data.IsOwner = collab.Owner.Id == user.Id

		join := dialog.NewJoinCollaboration(id)
		draft := h.Flash.PopDraft(r.Context(), joinDraftKey(id))
		if r.URL.Query().Get("join") == "1" || draft != "" {
			join.Open()
		}
		join.SetMessage(draft)
		data.Join = frontend_domain.JoinDialogData{
			Open:            join.IsOpen(),
			Action:          routes.CollaborationJoin(id),
			Message:         join.Message(),
			Counter:         join.Counter(),
			MaxLen:          dialog.MaxJoinMessageLen,
			Processing:      join.Processing(),
			AlreadyMember:   collab.IsMember(user.Id),
			CollaborationID: id,
		}

		send := dialog.NewSendMessage(collab.Owner.Id)
		send.SetMessage(h.Flash.PopDraft(r.Context(), messageDraftKey(collab.Owner.Id)))
		data.Message = sendDialogData(send, collab.Owner.DisplayName(), "")
	}

	h.renderTemplate(w, r, "collaboration.html", data)
}

// CollaborationJoinPostHandler submits the join dialog. Failures keep the draft and
// reopen the dialog with the error shown.
func (h *Handler) CollaborationJoinPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if !parseForm(w, r) {
		return
	}
	user := mw.GetUserFromContext(r)
	target := routes.Collaboration(id)

	join := dialog.NewJoinCollaboration(id)
	join.Open()
	join.SetMessage(r.PostFormValue("message"))

	release, ok := h.InFlight.Acquire(fmt.Sprintf("join:%d:%d", user.Id, id))
	if !ok {
		h.Flash.Draft(r.Context(), joinDraftKey(id), join.Message())
		h.redirectWithError(w, r, target, "Permintaan sebelumnya masih diproses.")
		return
	}
	defer release()

	if err := join.Submit(r.Context(), h.APIClient, session(r)); err != nil {
		logger.FromContext(r.Context()).Warn("joining collaboration", "collaboration_id", id, "error", err)
		h.Flash.Draft(r.Context(), joinDraftKey(id), join.Message())
		h.redirectWithError(w, r, target, userMessage(err))
		return
	}

	h.redirectWithSuccess(w, r, target, "Permintaan bergabung terkirim.")
}

func (h *Handler) CollaborationCreateGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "collaboration_create.html", frontend_domain.CollaborationCreatePageData{})
}

func (h *Handler) CollaborationCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	values := forms.FormValues(r.PostForm, collabFormFields...)
	req := api.CreateCollaborationRequest{
		Title:       values.Get("title"),
		Description: values.Get("description"),
	}
	if raw := values.Get("max_members"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.renderTemplateWithStatus(w, r, http.StatusUnprocessableEntity, "collaboration_create.html", frontend_domain.CollaborationCreatePageData{
				Form: forms.State{Values: values, Errors: forms.FieldErrors{}.Add("max_members", "Harus berupa angka.")},
			})
			return
		}
		req.MaxMembers = n
	}

	err := utils.Validate.Struct(req)
	var created api.CreatedResponse
	if err == nil {
		created, err = h.APIClient.CreateCollaboration(r.Context(), session(r), req)
	}
	if err != nil {
		if state, ok := validationState(err, values); ok {
			h.renderTemplateWithStatus(w, r, http.StatusUnprocessableEntity, "collaboration_create.html", frontend_domain.CollaborationCreatePageData{Form: state})
			return
		}
		logger.FromContext(r.Context()).Error("creating collaboration", "error", err)
		h.redirectWithError(w, r, routes.CollabCreate, userMessage(err))
		return
	}

	target := routes.Collaborations
	if created.Id > 0 {
		target = routes.Collaboration(created.Id)
	}
	h.redirectWithSuccess(w, r, target, "Kolaborasi berhasil dibuat.")
}
