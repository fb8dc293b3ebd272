package apiclient

import (
	"context"
	"net/http"

	"github.com/mira-dev/mira/shared/api"
)

// Login returns the cookies the backend set, to be forwarded to the browser.
func (c *APIClient) Login(ctx context.Context, sess Session, req api.LoginRequest) ([]*http.Cookie, error) {
	resp, err := c.do(ctx, "auth.login", http.MethodPost, c.cfg.Routes.Login(), req, sess, true)
	if err != nil {
		return nil, err
	}
	return resp.cookies, nil
}

// Register creates the account. The backend may log the user in straight away, in which
// case the returned cookies carry the session.
func (c *APIClient) Register(ctx context.Context, sess Session, req api.RegisterRequest) ([]*http.Cookie, error) {
	resp, err := c.do(ctx, "auth.register", http.MethodPost, c.cfg.Routes.Register(), req, sess, true)
	if err != nil {
		return nil, err
	}
	return resp.cookies, nil
}

func (c *APIClient) Logout(ctx context.Context, sess Session) error {
	_, err := c.do(ctx, "auth.logout", http.MethodPost, c.cfg.Routes.Logout(), nil, sess, true)
	return err
}
