package apiclient

import (
	"context"
	"net/http"

	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/domain"
)

func (c *APIClient) ListCollaborations(ctx context.Context, sess Session) ([]domain.Collaboration, error) {
	resp, err := c.get(ctx, "collaborations.list", c.cfg.Routes.Collaborations(), sess)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Collaboration](ctx, "collaborations.list", resp.body)
}

func (c *APIClient) GetCollaboration(ctx context.Context, sess Session, id int64) (domain.Collaboration, error) {
	resp, err := c.get(ctx, "collaborations.get", c.cfg.Routes.Collaboration(id), sess)
	if err != nil {
		return domain.Collaboration{}, err
	}
	return decodeOne[domain.Collaboration]("collaborations.get", resp.body)
}

func (c *APIClient) CreateCollaboration(ctx context.Context, sess Session, req api.CreateCollaborationRequest) (api.CreatedResponse, error) {
	resp, err := c.do(ctx, "collaborations.create", http.MethodPost, c.cfg.Routes.Collaborations(), req, sess, true)
	if err != nil {
		return api.CreatedResponse{}, err
	}
	return decodeOne[api.CreatedResponse]("collaborations.create", resp.body)
}

// JoinCollaboration files a join request. The backend documents no response body.
func (c *APIClient) JoinCollaboration(ctx context.Context, sess Session, id int64, req api.JoinCollaborationRequest) error {
	_, err := c.do(ctx, "collaborations.join", http.MethodPost, c.cfg.Routes.JoinCollaboration(id), req, sess, true)
	if err != nil {
		return err
	}
	c.InvalidateProfile(ctx, sess.UserID)
	return nil
}
