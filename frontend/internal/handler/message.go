package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	frontend_domain "github.com/mira-dev/mira/frontend/internal/domain"
	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/frontend/internal/dialog"
	"github.com/mira-dev/mira/frontend/internal/markdown"
	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/frontend/internal/view"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/domain"
	internal_errors "github.com/mira-dev/mira/shared/errors"
	"github.com/mira-dev/mira/shared/logger"
	mw "github.com/mira-dev/mira/shared/middleware"
	"github.com/mira-dev/mira/shared/utils"
)

const (
	alertEmptyMessage = "Message cannot be empty."
	alertInFlight     = "Your previous message is still being sent."
)

// sendMessageReply is the JSON answer to a script-driven send.
type sendMessageReply struct {
	Redirect string `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}

func sendDialogData(d *dialog.SendMessage, receiverName, alert string) frontend_domain.SendMessageDialogData {
	return frontend_domain.SendMessageDialogData{
		Action:       routes.DirectMessages,
		ReceiverID:   d.ReceiverID(),
		ReceiverName: receiverName,
		Message:      d.Message(),
		CanSend:      d.CanSend(),
		CanCancel:    d.CanCancel(),
		Alert:        alert,
	}
}

// ChatGetHandler renders the chat page: the conversation sidebar and, when ?user= names a
// partner, the thread with them and the send dialog.
func (h *Handler) ChatGetHandler(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	sess := session(r)
	q := r.URL.Query()

	tab := q.Get("tab")
	if tab == "" {
		tab = routes.TabPersonal
	}
	var partnerID domain.UserId
	if raw := q.Get("user"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			partnerID = id
		}
	}

	convs, err := h.APIClient.ListConversations(r.Context(), sess)
	if err != nil {
		logger.FromContext(r.Context()).Warn("listing conversations", "error", err)
	}

	for i := range convs {
		convs[i].LastMessage = h.Markdown.Plain(convs[i].LastMessage)
	}

	data := frontend_domain.ChatPageData{
		Tab:     tab,
		Sidebar: view.NewChatSidebar(convs, partnerID, h.Location),
		Empty:   view.EmptyMessages,
	}

	if partnerID != 0 {
		partner := &domain.User{Id: partnerID}
		for _, c := range convs {
			if c.Partner.Id == partnerID {
				p := c.Partner
				partner = &p
				break
			}
		}
		data.Partner = partner

		msgs, err := h.APIClient.ListMessages(r.Context(), sess, partnerID)
		if err != nil {
			logger.FromContext(r.Context()).Warn("listing messages", "partner_id", partnerID, "error", err)
		}
		for _, m := range view.NewChatMessages(msgs, user.Id, h.Location).Items {
			data.Messages = append(data.Messages, frontend_domain.ChatMessage{
				ChatMessage: m,
				HTML:        h.Markdown.Render(m.Text, markdown.Inline),
			})
		}

		send := dialog.NewSendMessage(partnerID)
		send.SetMessage(h.Flash.PopDraft(r.Context(), messageDraftKey(partnerID)))
		data.Dialog = sendDialogData(send, partner.DisplayName(), "")
		data.ReturnTo = routes.PersonalChat(partnerID)
	}

	h.renderTemplate(w, r, "chat.html", data)
}

// DirectMessagePostHandler submits the send message dialog. Form posts are answered with a
// redirect; JSON posts (Content-Type application/json) with {redirect} or {error}.
func (h *Handler) DirectMessagePostHandler(w http.ResponseWriter, r *http.Request) {
	wantsJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

	req, returnTo, err := readSendMessage(r, wantsJSON)
	if err != nil {
		if wantsJSON {
			utils.WriteJSON(w, http.StatusBadRequest, sendMessageReply{Error: err.Error()})
			return
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	user := mw.GetUserFromContext(r)
	if returnTo == "" {
		returnTo = routes.PersonalChat(req.ReceiverId)
	}

	send := dialog.NewSendMessage(req.ReceiverId)
	send.SetMessage(req.Message)

	fail := func(status int, alert string) {
		if wantsJSON {
			utils.WriteJSON(w, status, sendMessageReply{Error: alert})
			return
		}
		h.Flash.Draft(r.Context(), messageDraftKey(req.ReceiverId), send.Message())
		h.redirectWithError(w, r, returnTo, alert)
	}

	if !send.CanSend() {
		fail(http.StatusUnprocessableEntity, alertEmptyMessage)
		return
	}

	release, ok := h.InFlight.Acquire(fmt.Sprintf("dm:%d:%d", user.Id, req.ReceiverId))
	if !ok {
		fail(http.StatusConflict, alertInFlight)
		return
	}
	defer release()

	outcome, err := send.Send(r.Context(), h.APIClient, session(r))
	if err != nil {
		logger.FromContext(r.Context()).Warn("sending direct message", "receiver_id", req.ReceiverId, "error", err)
		fail(backendFailureStatus(err), outcome.Alert)
		return
	}

	if wantsJSON {
		utils.WriteJSON(w, http.StatusOK, sendMessageReply{Redirect: outcome.RedirectURL})
		return
	}
	http.Redirect(w, r, outcome.RedirectURL, http.StatusSeeOther)
}

func readSendMessage(r *http.Request, wantsJSON bool) (api.SendDirectMessageRequest, string, error) {
	var (
		req      api.SendDirectMessageRequest
		returnTo string
	)
	if wantsJSON {
		if err := utils.Decode(r.Body, &req); err != nil {
			return req, "", err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, "", internal_errors.BadRequest("Invalid form data")
		}
		id, err := strconv.ParseInt(r.PostFormValue("receiver_id"), 10, 64)
		if err != nil {
			return req, "", internal_errors.BadRequest("invalid receiver_id")
		}
		req.ReceiverId = id
		req.Message = r.PostFormValue("message")
		returnTo = safeReturnPath(r.PostFormValue("return_to"), "")
	}
	if req.ReceiverId <= 0 {
		return req, "", internal_errors.BadRequest("invalid receiver_id")
	}
	return req, returnTo, nil
}

// backendFailureStatus mirrors the backend's rejection status; anything else is a bad gateway.
func backendFailureStatus(err error) int {
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode < http.StatusInternalServerError {
		return httpErr.StatusCode
	}
	return http.StatusBadGateway
}
