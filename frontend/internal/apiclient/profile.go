package apiclient

import (
	"context"
	"fmt"

	"github.com/mira-dev/mira/shared/domain"
)

// Profile list kinds, used both as backend path segments and cache key parts.
const (
	ProfileCollabs        = "collabs"
	ProfileComments       = "comments"
	ProfileForums         = "forums"
	ProfileOngoingCollabs = "ongoing-collabs"
)

func profileKey(userID int64, kind string) string {
	return fmt.Sprintf("profile:%d:%s", userID, kind)
}

func profilePrefix(userID int64) string {
	return fmt.Sprintf("profile:%d:", userID)
}

// fetchProfileList serves from the cache when it can. Only validated responses are cached.
func fetchProfileList[T any](ctx context.Context, c *APIClient, sess Session, kind string) ([]T, error) {
	endpoint := "profile." + kind
	cacheable := c.cache != nil && sess.UserID > 0 && c.cfg.CacheTTL > 0
	key := profileKey(sess.UserID, kind)

	if cacheable {
		if body, ok := c.cache.Get(ctx, key); ok {
			if items, err := decodeList[T](ctx, endpoint, body); err == nil {
				cacheLookups.WithLabelValues("hit").Inc()
				return items, nil
			}
		}
		cacheLookups.WithLabelValues("miss").Inc()
	}

	resp, err := c.get(ctx, endpoint, c.cfg.Routes.ProfileList(kind), sess)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](ctx, endpoint, resp.body)
	if err != nil {
		return nil, err
	}
	if cacheable {
		c.cache.Set(ctx, key, resp.body, c.cfg.CacheTTL)
	}
	return items, nil
}

func (c *APIClient) ProfileCollabs(ctx context.Context, sess Session) ([]domain.Collaboration, error) {
	return fetchProfileList[domain.Collaboration](ctx, c, sess, ProfileCollabs)
}

func (c *APIClient) ProfileComments(ctx context.Context, sess Session) ([]domain.Comment, error) {
	return fetchProfileList[domain.Comment](ctx, c, sess, ProfileComments)
}

func (c *APIClient) ProfileForums(ctx context.Context, sess Session) ([]domain.ForumPost, error) {
	return fetchProfileList[domain.ForumPost](ctx, c, sess, ProfileForums)
}

func (c *APIClient) ProfileOngoingCollabs(ctx context.Context, sess Session) ([]domain.Collaboration, error) {
	return fetchProfileList[domain.Collaboration](ctx, c, sess, ProfileOngoingCollabs)
}

// InvalidateProfile drops the cached profile lists of a user after a mutation.
func (c *APIClient) InvalidateProfile(ctx context.Context, userID int64) {
	if c.cache == nil || userID <= 0 {
		return
	}
	c.cache.DeletePrefix(ctx, profilePrefix(userID))
}
