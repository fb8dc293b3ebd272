package dialog

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/shared/api"
)

const MaxJoinMessageLen = api.MaxJoinMessageLen

// JoinCollaboration is the "request to join" dialog of a collaboration page.
type JoinCollaboration struct {
	mu              sync.Mutex
	collaborationID int64
	open            bool
	message         string
	processing      bool
}

func NewJoinCollaboration(collaborationID int64) *JoinCollaboration {
	return &JoinCollaboration{collaborationID: collaborationID}
}

func (d *JoinCollaboration) CollaborationID() int64 { return d.collaborationID }

func (d *JoinCollaboration) Open() {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

// Close hides the dialog and discards the draft.
func (d *JoinCollaboration) Close() {
	d.mu.Lock()
	d.open = false
	d.message = ""
	d.mu.Unlock()
}

func (d *JoinCollaboration) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// SetMessage stores the draft, cut to MaxJoinMessageLen characters.
func (d *JoinCollaboration) SetMessage(s string) {
	d.mu.Lock()
	d.message = truncateRunes(s, MaxJoinMessageLen)
	d.mu.Unlock()
}

func (d *JoinCollaboration) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message
}

// Counter renders the character counter shown under the textarea.
func (d *JoinCollaboration) Counter() string {
	return fmt.Sprintf("%d/%d", utf8.RuneCountInString(d.Message()), MaxJoinMessageLen)
}

func (d *JoinCollaboration) Processing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.processing
}

// Submit files the join request. On success the dialog closes and the draft is cleared;
// on failure the draft is kept and the classified error is returned. There is no retry.
func (d *JoinCollaboration) Submit(ctx context.Context, joiner Joiner, sess apiclient.Session) error {
	d.mu.Lock()
	if d.processing {
		d.mu.Unlock()
		return ErrInFlight
	}
	d.processing = true
	req := api.JoinCollaborationRequest{Message: d.message}
	d.mu.Unlock()

	err := joiner.JoinCollaboration(ctx, sess, d.collaborationID, req)

	d.mu.Lock()
	d.processing = false
	if err == nil {
		d.open = false
		d.message = ""
	}
	d.mu.Unlock()
	return err
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
