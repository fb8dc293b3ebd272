package domain

import (
	"encoding/json"
	"time"

	"github.com/mira-dev/mira/shared/utils"
)

// Tags accepts either a JSON array or a JSON string holding an encoded array,
// since the backend is not consistent about which one it sends.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	*t = utils.ParseArray(json.RawMessage(data))
	return nil
}

type ForumPost struct {
	Id            int64     `json:"id" validate:"required,gt=0"`
	Title         string    `json:"title" validate:"required"`
	Slug          string    `json:"slug" validate:"required"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Tags          Tags      `json:"tags"`
	LikesCount    int       `json:"likes_count" validate:"gte=0"`
	CommentsCount int       `json:"comments_count" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	Author        User      `json:"author" validate:"-"`
}

type Comment struct {
	Id         int64     `json:"id" validate:"required,gt=0"`
	ForumId    int64     `json:"forum_id"`
	ForumTitle string    `json:"forum_title"`
	ForumSlug  string    `json:"forum_slug"`
	Body       string    `json:"body"`
	Author     User      `json:"author" validate:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
