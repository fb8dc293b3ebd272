package apiclient

import (
	"context"
	"net/http"

	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/domain"
)

func (c *APIClient) ListConversations(ctx context.Context, sess Session) ([]domain.Conversation, error) {
	resp, err := c.get(ctx, "conversations.list", c.cfg.Routes.Conversations(), sess)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Conversation](ctx, "conversations.list", resp.body)
}

func (c *APIClient) ListMessages(ctx context.Context, sess Session, userID int64) ([]domain.DirectMessage, error) {
	resp, err := c.get(ctx, "conversations.messages", c.cfg.Routes.ConversationMessages(userID), sess)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.DirectMessage](ctx, "conversations.messages", resp.body)
}

// SendDirectMessage posts with the backend CSRF header. A non-2xx answer is an
// *HTTPError whose body may carry an api.SendDirectMessageError.
func (c *APIClient) SendDirectMessage(ctx context.Context, sess Session, req api.SendDirectMessageRequest) error {
	_, err := c.do(ctx, "direct_messages.send", http.MethodPost, c.cfg.Routes.DirectMessages(), req, sess, true)
	if err != nil {
		return err
	}
	c.InvalidateProfile(ctx, sess.UserID)
	return nil
}
