package dialog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/shared/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJoiner struct {
	err   error
	calls int
	got   api.JoinCollaborationRequest
	block chan struct{}
}

func (f *fakeJoiner) JoinCollaboration(_ context.Context, _ apiclient.Session, _ int64, req api.JoinCollaborationRequest) error {
	f.calls++
	f.got = req
	if f.block != nil {
		<-f.block
	}
	return f.err
}

type fakeSender struct {
	err   error
	calls int
	got   api.SendDirectMessageRequest
}

func (f *fakeSender) SendDirectMessage(_ context.Context, _ apiclient.Session, req api.SendDirectMessageRequest) error {
	f.calls++
	f.got = req
	return f.err
}

func TestJoinTruncatesMessage(t *testing.T) {
	d := NewJoinCollaboration(5)

	d.SetMessage(strings.Repeat("a", 600))
	assert.Len(t, d.Message(), MaxJoinMessageLen)
	assert.Equal(t, "500/500", d.Counter())

	d.SetMessage(strings.Repeat("é", 501))
	assert.Equal(t, MaxJoinMessageLen, len([]rune(d.Message())))
	assert.Equal(t, "500/500", d.Counter())

	d.SetMessage("halo")
	assert.Equal(t, "4/500", d.Counter())
}

func TestJoinSubmit(t *testing.T) {
	t.Run("success closes and clears", func(t *testing.T) {
		d := NewJoinCollaboration(5)
		d.Open()
		d.SetMessage("saya ikut")
		j := &fakeJoiner{}

		require.NoError(t, d.Submit(context.Background(), j, apiclient.Session{}))
		assert.Equal(t, "saya ikut", j.got.Message)
		assert.False(t, d.IsOpen())
		assert.Empty(t, d.Message())
		assert.False(t, d.Processing())
	})

	t.Run("failure keeps the draft", func(t *testing.T) {
		d := NewJoinCollaboration(5)
		d.Open()
		d.SetMessage("saya ikut")
		j := &fakeJoiner{err: &apiclient.HTTPError{StatusCode: http.StatusConflict}}

		err := d.Submit(context.Background(), j, apiclient.Session{})
		assert.Equal(t, apiclient.KindHTTP, apiclient.KindOf(err))
		assert.True(t, d.IsOpen())
		assert.Equal(t, "saya ikut", d.Message())
		assert.Equal(t, 1, j.calls, "no retry")
	})

	t.Run("second submit while in flight", func(t *testing.T) {
		d := NewJoinCollaboration(5)
		j := &fakeJoiner{block: make(chan struct{})}

		done := make(chan error)
		go func() { done <- d.Submit(context.Background(), j, apiclient.Session{}) }()
		require.Eventually(t, d.Processing, time.Second, time.Millisecond)

		assert.ErrorIs(t, d.Submit(context.Background(), j, apiclient.Session{}), ErrInFlight)
		close(j.block)
		require.NoError(t, <-done)
		assert.Equal(t, 1, j.calls)
	})
}

func TestJoinClose(t *testing.T) {
	d := NewJoinCollaboration(1)
	d.Open()
	d.SetMessage("draft")
	d.Close()
	assert.False(t, d.IsOpen())
	assert.Empty(t, d.Message())
}

func TestCanSend(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"", false},
		{"   \n\t", false},
		{"halo", true},
		{"  halo  ", true},
	}
	for _, tt := range tests {
		d := NewSendMessage(3)
		d.SetMessage(tt.msg)
		assert.Equal(t, tt.want, d.CanSend(), "message %q", tt.msg)
		assert.True(t, d.CanCancel())
	}
}

func TestSend(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := NewSendMessage(3)
		d.SetMessage("halo")
		s := &fakeSender{}

		out, err := d.Send(context.Background(), s, apiclient.Session{})
		require.NoError(t, err)
		assert.True(t, out.OK())
		assert.Equal(t, "/pesan?tab=personal&user=3", out.RedirectURL)
		assert.Equal(t, api.SendDirectMessageRequest{ReceiverId: 3, Message: "halo"}, s.got)
		assert.Empty(t, d.Message())
		assert.Equal(t, StateIdle, d.State())
	})

	t.Run("rejected with server error", func(t *testing.T) {
		d := NewSendMessage(3)
		d.SetMessage("halo")
		s := &fakeSender{err: &apiclient.HTTPError{StatusCode: 403, Body: []byte(`{"error":"You cannot message this user."}`)}}

		out, err := d.Send(context.Background(), s, apiclient.Session{})
		require.Error(t, err)
		assert.Equal(t, "You cannot message this user.", out.Alert)
		assert.Empty(t, out.RedirectURL)
		assert.Equal(t, "halo", d.Message())
		assert.Equal(t, StateIdle, d.State())
	})

	t.Run("rejected without error field", func(t *testing.T) {
		d := NewSendMessage(3)
		d.SetMessage("halo")
		s := &fakeSender{err: &apiclient.HTTPError{StatusCode: 500}}

		out, _ := d.Send(context.Background(), s, apiclient.Session{})
		assert.Equal(t, AlertSendFailed, out.Alert)
	})

	t.Run("network failure", func(t *testing.T) {
		d := NewSendMessage(3)
		d.SetMessage("halo")
		s := &fakeSender{err: &apiclient.NetworkError{Err: errors.New("connection refused")}}

		out, _ := d.Send(context.Background(), s, apiclient.Session{})
		assert.Equal(t, AlertSendError, out.Alert)
		assert.True(t, d.CanSend())
	})

	t.Run("empty draft is not sent", func(t *testing.T) {
		d := NewSendMessage(3)
		d.SetMessage("  ")
		s := &fakeSender{}

		_, err := d.Send(context.Background(), s, apiclient.Session{})
		assert.True(t, IsEmptyMessage(err))
		assert.Zero(t, s.calls)
	})
}

func TestInFlight(t *testing.T) {
	f := NewInFlight()

	release, ok := f.Acquire("7:3")
	require.True(t, ok)

	_, ok = f.Acquire("7:3")
	assert.False(t, ok)

	other, ok := f.Acquire("7:4")
	require.True(t, ok)
	other()

	release()
	again, ok := f.Acquire("7:3")
	require.True(t, ok)
	again()
}

func TestInFlightConcurrent(t *testing.T) {
	f := NewInFlight()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	start := make(chan struct{})
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := f.Acquire("k"); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()
	assert.Equal(t, 1, wins)
}
