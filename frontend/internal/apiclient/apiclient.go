package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mira-dev/mira/frontend/internal/cache"
	"github.com/mira-dev/mira/frontend/internal/flash"
	"github.com/mira-dev/mira/shared/csrf"
	"github.com/mira-dev/mira/shared/logger"
	"github.com/sony/gobreaker/v2"
)

const maxBodyBytes = 4 << 20

// Config is everything the request layer needs; nothing is read from globals.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Breaker  BreakerConfig
	Routes   Routes
	CacheTTL time.Duration
}

type BreakerConfig struct {
	MaxFailures uint32        // consecutive failures before the breaker opens
	OpenTimeout time.Duration // how long it stays open before probing again
}

// Routes builds backend paths.
type Routes struct {
	APIPrefix string
}

func DefaultRoutes() Routes { return Routes{APIPrefix: "/api"} }

func (r Routes) Login() string    { return r.APIPrefix + "/auth/login" }
func (r Routes) Register() string { return r.APIPrefix + "/auth/register" }
func (r Routes) Logout() string   { return r.APIPrefix + "/auth/logout" }
func (r Routes) Forums() string   { return r.APIPrefix + "/forums" }
func (r Routes) Forum(slug string) string {
	return r.Forums() + "/" + url.PathEscape(slug)
}
func (r Routes) ForumComments(slug string) string { return r.Forum(slug) + "/comments" }
func (r Routes) Collaborations() string         { return r.APIPrefix + "/collaborations" }
func (r Routes) Collaboration(id int64) string {
	return r.Collaborations() + "/" + strconv.FormatInt(id, 10)
}

// JoinCollaboration is served outside the API prefix by the backend.
func (r Routes) JoinCollaboration(id int64) string {
	return "/kolaborasi/" + strconv.FormatInt(id, 10) + "/join"
}
func (r Routes) Conversations() string { return r.APIPrefix + "/conversations" }
func (r Routes) ConversationMessages(userID int64) string {
	return r.Conversations() + "/" + strconv.FormatInt(userID, 10) + "/messages"
}
func (r Routes) DirectMessages() string         { return "/direct-messages" }
func (r Routes) ProfileList(kind string) string { return r.APIPrefix + "/profile/" + kind }

// Session is the per-user part of a backend call, derived from the incoming request.
type Session struct {
	Cookies   []*http.Cookie
	CSRFToken string
	UserID    int64
}

// frontendCookies belong to this service and are never forwarded to the backend.
var frontendCookies = map[string]bool{
	"csrf_token":     true,
	flash.CookieName: true,
}

func SessionFromRequest(r *http.Request, userID int64) Session {
	s := Session{UserID: userID}
	for _, c := range r.Cookies() {
		if frontendCookies[c.Name] {
			continue
		}
		s.Cookies = append(s.Cookies, c)
		if c.Name == csrf.BackendCookie {
			// the backend url-encodes this cookie
			if token, err := url.QueryUnescape(c.Value); err == nil {
				s.CSRFToken = token
			}
		}
	}
	return s
}

// APIClient handles all communication with the backend API.
type APIClient struct {
	cfg        Config
	HttpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*response]
	cache      cache.Store
}

type response struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

// New builds a client. store may be nil, which disables profile list caching.
func New(cfg Config, store cache.Store) *APIClient {
	if cfg.Routes == (Routes{}) {
		cfg.Routes = DefaultRoutes()
	}
	if cfg.Breaker.MaxFailures == 0 {
		cfg.Breaker.MaxFailures = 5
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &APIClient{
		cfg:        cfg,
		HttpClient: &http.Client{},
		cache:      store,
	}
	c.breaker = gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1,
		Timeout:     cfg.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			// 4xx answers prove the backend is alive
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Log.Warn("backend circuit breaker changed state", "from", from.String(), "to", to.String())
		},
	})
	return c
}

func (c *APIClient) Routes() Routes { return c.cfg.Routes }

// BreakerState exposes the breaker for health reporting.
func (c *APIClient) BreakerState() gobreaker.State { return c.breaker.State() }

// do is the single, unified helper for making API requests. Non-2xx answers come back
// as *HTTPError together with the response, so callers can still read the body.
func (c *APIClient) do(ctx context.Context, endpoint, method, path string, body any, sess Session, withCSRF bool) (*response, error) {
	start := time.Now()
	resp, err := c.execute(ctx, endpoint, method, path, body, sess, withCSRF)

	kind := KindOf(err)
	backendRequestsTotal.WithLabelValues(endpoint, kind.String()).Inc()
	backendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	log := logger.FromContext(ctx)
	switch kind {
	case KindOK:
		log.Debug("backend call", "endpoint", endpoint, "status", resp.status)
	case KindHTTP:
		log.Info("backend call rejected", "endpoint", endpoint, "status", resp.status)
	default:
		log.Warn("backend call failed", "endpoint", endpoint, "kind", kind.String(), "error", err)
	}
	return resp, err
}

func (c *APIClient) execute(ctx context.Context, endpoint, method, path string, body any, sess Session, withCSRF bool) (*response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &UnknownError{Endpoint: endpoint, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, &UnknownError{Endpoint: endpoint, Err: fmt.Errorf("failed to create API request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	if withCSRF && sess.CSRFToken != "" {
		req.Header.Set(csrf.Header, sess.CSRFToken)
	}
	for _, cookie := range sess.Cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.breaker.Execute(func() (*response, error) {
		httpResp, err := c.HttpClient.Do(req)
		if err != nil {
			return nil, &NetworkError{Endpoint: endpoint, Err: err}
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
		if err != nil {
			return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("reading response: %w", err)}
		}
		r := &response{status: httpResp.StatusCode, body: data, cookies: httpResp.Cookies()}
		if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
			return r, &HTTPError{Endpoint: endpoint, StatusCode: httpResp.StatusCode, Body: data}
		}
		return r, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	return resp, err
}

func (c *APIClient) get(ctx context.Context, endpoint, path string, sess Session) (*response, error) {
	return c.do(ctx, endpoint, http.MethodGet, path, nil, sess, false)
}
