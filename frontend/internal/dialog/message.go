package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/domain"
)

const (
	AlertSendFailed = "Failed to send message."
	AlertSendError  = "An error occurred while sending the message."
)

type State int

const (
	StateIdle State = iota
	StateSending
)

func (s State) String() string {
	if s == StateSending {
		return "sending"
	}
	return "idle"
}

// Outcome is what the page does after a send: navigate, or show an alert.
type Outcome struct {
	RedirectURL string
	Alert       string
}

func (o Outcome) OK() bool { return o.RedirectURL != "" }

// SendMessage is the "send a message" dialog on profiles and collaboration pages.
type SendMessage struct {
	mu         sync.Mutex
	receiverID domain.UserId
	message    string
	state      State
}

func NewSendMessage(receiverID domain.UserId) *SendMessage {
	return &SendMessage{receiverID: receiverID}
}

func (d *SendMessage) ReceiverID() domain.UserId { return d.receiverID }

func (d *SendMessage) SetMessage(s string) {
	d.mu.Lock()
	d.message = s
	d.mu.Unlock()
}

func (d *SendMessage) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message
}

func (d *SendMessage) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// CanSend is false exactly when the trimmed draft is empty or a send is in flight.
func (d *SendMessage) CanSend() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canSendLocked()
}

func (d *SendMessage) canSendLocked() bool {
	return strings.TrimSpace(d.message) != "" && d.state != StateSending
}

// CanCancel is false while sending; the dialog is never force-closed mid-request.
func (d *SendMessage) CanCancel() bool {
	return d.State() != StateSending
}

// Reset clears the draft and returns to idle.
func (d *SendMessage) Reset() {
	d.mu.Lock()
	d.message = ""
	d.state = StateIdle
	d.mu.Unlock()
}

// Send moves idle → sending → idle. Success resets the dialog and points at the personal
// chat with the receiver; failures keep the draft and carry an alert.
func (d *SendMessage) Send(ctx context.Context, sender MessageSender, sess apiclient.Session) (Outcome, error) {
	d.mu.Lock()
	if d.state == StateSending {
		d.mu.Unlock()
		return Outcome{}, ErrInFlight
	}
	if !d.canSendLocked() {
		d.mu.Unlock()
		return Outcome{}, errEmptyMessage
	}
	d.state = StateSending
	req := api.SendDirectMessageRequest{ReceiverId: d.receiverID, Message: d.message}
	d.mu.Unlock()

	err := sender.SendDirectMessage(ctx, sess, req)
	if err != nil {
		d.mu.Lock()
		d.state = StateIdle
		d.mu.Unlock()
		return Outcome{Alert: alertFor(err)}, err
	}

	d.Reset()
	return Outcome{RedirectURL: routes.PersonalChat(d.receiverID)}, nil
}

var errEmptyMessage = errors.New("message is empty")

// IsEmptyMessage reports a Send refused because there was nothing to send.
func IsEmptyMessage(err error) bool { return errors.Is(err, errEmptyMessage) }

// alertFor prefers the backend's own explanation for rejected sends.
func alertFor(err error) string {
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) {
		var body api.SendDirectMessageError
		if json.Unmarshal(httpErr.Body, &body) == nil && body.Error != "" {
			return body.Error
		}
		return AlertSendFailed
	}
	return AlertSendError
}
