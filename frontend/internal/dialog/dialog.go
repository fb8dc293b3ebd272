// Package dialog holds the interaction models behind the join and direct message dialogs:
// the draft a user is editing, whether a submission is in flight, and what happens after.
package dialog

import (
	"context"
	"errors"
	"sync"

	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/shared/api"
)

// ErrInFlight is returned when a second submission starts before the first one finished.
var ErrInFlight = errors.New("a submission is already in progress")

// Joiner is the slice of the request layer the join dialog needs.
type Joiner interface {
	JoinCollaboration(ctx context.Context, sess apiclient.Session, id int64, req api.JoinCollaborationRequest) error
}

// MessageSender is the slice of the request layer the message dialog needs.
type MessageSender interface {
	SendDirectMessage(ctx context.Context, sess apiclient.Session, req api.SendDirectMessageRequest) error
}

// InFlight rejects concurrent submissions for the same key, e.g. one user sending twice to
// the same receiver from two tabs.
type InFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{keys: make(map[string]struct{})}
}

// Acquire returns a release func, or false if key is already held.
func (f *InFlight) Acquire(key string) (func(), bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return nil, false
	}
	f.keys[key] = struct{}{}
	return func() {
		f.mu.Lock()
		delete(f.keys, key)
		f.mu.Unlock()
	}, true
}
