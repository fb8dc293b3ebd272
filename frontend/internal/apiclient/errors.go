package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNoResponse = errors.New("no response received from server")
	ErrUnknown    = errors.New("unknown error")
)

// Kind tags the outcome of a backend call.
type Kind int

const (
	KindOK Kind = iota
	KindNetwork
	KindHTTP
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// NetworkError means the request was sent (or attempted) and no response came back:
// transport failures, timeouts and an open circuit breaker.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend unavailable: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Endpoint, e.StatusCode, e.ServerMessage())
}

// ServerMessage picks the human readable part of the error body: the JSON "message" or
// "error" field, a short plain text body, or the status text.
func (e *HTTPError) ServerMessage() string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	text := strings.TrimSpace(string(e.Body))
	if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(e.StatusCode)
}

// UnknownError covers payloads that could not be decoded or failed validation.
type UnknownError struct {
	Endpoint string
	Err      error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %v", e.Endpoint, e.Err)
}

func (e *UnknownError) Unwrap() error { return e.Err }

// KindOf classifies err without inspecting its message.
func KindOf(err error) Kind {
	var (
		netErr  *NetworkError
		httpErr *HTTPError
	)
	switch {
	case err == nil:
		return KindOK
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &httpErr):
		return KindHTTP
	default:
		return KindUnknown
	}
}

// IsStatus reports whether err is an HTTPError with the given status.
func IsStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}

// HandleErrors turns any failure value into a user-facing error. It never returns nil:
// callers use it as the last step before showing the failure, not to recover from it.
//
// Besides this package's typed errors it understands loosely decoded payloads
// (map[string]any) of the shape {response:{status,data:{message}}}, {request:..} or
// {message:..}, as posted by browser scripts reporting their own fetch failures.
func HandleErrors(v any) error {
	switch val := v.(type) {
	case nil:
		return ErrUnknown
	case map[string]any:
		return handlePayload(val)
	case error:
		var (
			httpErr *HTTPError
			netErr  *NetworkError
		)
		switch {
		case errors.As(val, &httpErr):
			return fmt.Errorf("request failed with status %d: %s", httpErr.StatusCode, httpErr.ServerMessage())
		case errors.As(val, &netErr):
			return ErrNoResponse
		case val.Error() != "":
			return fmt.Errorf("error: %w", val)
		}
	}
	return ErrUnknown
}

func handlePayload(p map[string]any) error {
	if resp, ok := p["response"].(map[string]any); ok {
		status := toInt(resp["status"])
		msg := ""
		if data, ok := resp["data"].(map[string]any); ok {
			msg, _ = data["message"].(string)
		}
		if msg == "" {
			msg, _ = resp["statusText"].(string)
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		return fmt.Errorf("request failed with status %d: %s", status, msg)
	}
	if _, ok := p["request"]; ok {
		return ErrNoResponse
	}
	if msg, ok := p["message"].(string); ok && msg != "" {
		return fmt.Errorf("error: %s", msg)
	}
	return ErrUnknown
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	default:
		return 0
	}
}
