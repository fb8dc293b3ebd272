package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/domain"
)

// ListForums passes the filter query through untouched; the backend owns filtering.
func (c *APIClient) ListForums(ctx context.Context, sess Session, query url.Values) ([]domain.ForumPost, error) {
	path := c.cfg.Routes.Forums()
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	resp, err := c.get(ctx, "forums.list", path, sess)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.ForumPost](ctx, "forums.list", resp.body)
}

func (c *APIClient) GetForum(ctx context.Context, sess Session, slug string) (domain.ForumPost, error) {
	resp, err := c.get(ctx, "forums.get", c.cfg.Routes.Forum(slug), sess)
	if err != nil {
		return domain.ForumPost{}, err
	}
	return decodeOne[domain.ForumPost]("forums.get", resp.body)
}

func (c *APIClient) ListForumComments(ctx context.Context, sess Session, slug string) ([]domain.Comment, error) {
	resp, err := c.get(ctx, "forums.comments", c.cfg.Routes.ForumComments(slug), sess)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Comment](ctx, "forums.comments", resp.body)
}

func (c *APIClient) CreateForum(ctx context.Context, sess Session, req api.CreateForumRequest) (api.CreatedResponse, error) {
	resp, err := c.do(ctx, "forums.create", http.MethodPost, c.cfg.Routes.Forums(), req, sess, true)
	if err != nil {
		return api.CreatedResponse{}, err
	}
	return decodeOne[api.CreatedResponse]("forums.create", resp.body)
}
