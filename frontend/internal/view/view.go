// Package view shapes backend entities into the rows and cards templates render.
// Builders are pure: they never fail and never reach the network.
package view

import (
	"time"

	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/shared/domain"
)

const (
	dateLayout  = "02 Jan 2006"
	maxCardTags = 3

	EmptyForums         = "Belum ada forum."
	EmptyCollabs        = "Belum ada kolaborasi."
	EmptyComments       = "Belum ada komentar."
	EmptyOngoingCollabs = "Tidak ada kolaborasi yang sedang berjalan."
	EmptyConversations  = "Belum ada percakapan."
	EmptyMessages       = "Belum ada pesan. Mulai percakapan!"
)

// List is a collection with the message shown when it has nothing in it.
type List[T any] struct {
	Items        []T
	EmptyMessage string
}

func (l List[T]) Empty() bool { return len(l.Items) == 0 }

func newList[S, T any](src []S, empty string, build func(S) T) List[T] {
	items := make([]T, 0, len(src))
	for _, s := range src {
		items = append(items, build(s))
	}
	return List[T]{Items: items, EmptyMessage: empty}
}

// FormatDate renders t in loc; the zero time is shown as "-".
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout)
}

type ForumCard struct {
	Title     string
	URL       string
	Excerpt   string
	Category  string
	Tags      []string
	Author    string
	Likes     int
	Comments  int
	CreatedAt string
}

func NewForumCard(p domain.ForumPost, loc *time.Location) ForumCard {
	tags := []string(p.Tags)
	if len(tags) > maxCardTags {
		tags = tags[:maxCardTags]
	}
	return ForumCard{
		Title:     p.Title,
		URL:       routes.Forum(p.Slug),
		Excerpt:   excerpt(p.Description, 160),
		Category:  p.Category,
		Tags:      tags,
		Author:    p.Author.DisplayName(),
		Likes:     p.LikesCount,
		Comments:  p.CommentsCount,
		CreatedAt: FormatDate(p.CreatedAt, loc),
	}
}

func NewForumCards(posts []domain.ForumPost, loc *time.Location) List[ForumCard] {
	return newList(posts, EmptyForums, func(p domain.ForumPost) ForumCard { return NewForumCard(p, loc) })
}

type CollabRow struct {
	ID          int64
	Title       string
	URL         string
	Owner       string
	Status      string
	MemberCount int
	CreatedAt   string
}

func NewCollabRow(c domain.Collaboration, loc *time.Location) CollabRow {
	return CollabRow{
		ID:          c.Id,
		Title:       c.Title,
		URL:         routes.Collaboration(c.Id),
		Owner:       c.Owner.DisplayName(),
		Status:      string(c.Status),
		MemberCount: c.MemberCount(),
		CreatedAt:   FormatDate(c.CreatedAt, loc),
	}
}

func NewCollabsTable(cs []domain.Collaboration, loc *time.Location) List[CollabRow] {
	return newList(cs, EmptyCollabs, func(c domain.Collaboration) CollabRow { return NewCollabRow(c, loc) })
}

type ForumRow struct {
	Title     string
	URL       string
	Category  string
	Comments  int
	Likes     int
	CreatedAt string
}

func NewForumRow(p domain.ForumPost, loc *time.Location) ForumRow {
	return ForumRow{
		Title:     p.Title,
		URL:       routes.Forum(p.Slug),
		Category:  p.Category,
		Comments:  p.CommentsCount,
		Likes:     p.LikesCount,
		CreatedAt: FormatDate(p.CreatedAt, loc),
	}
}

func NewForumsTable(ps []domain.ForumPost, loc *time.Location) List[ForumRow] {
	return newList(ps, EmptyForums, func(p domain.ForumPost) ForumRow { return NewForumRow(p, loc) })
}

type CommentRow struct {
	Excerpt    string
	ForumTitle string
	ForumURL   string
	CreatedAt  string
}

func NewCommentRow(c domain.Comment, loc *time.Location) CommentRow {
	row := CommentRow{
		Excerpt:    excerpt(c.Body, 120),
		ForumTitle: c.ForumTitle,
		CreatedAt:  FormatDate(c.CreatedAt, loc),
	}
	if c.ForumSlug != "" {
		row.ForumURL = routes.Forum(c.ForumSlug)
	}
	return row
}

func NewCommentsTable(cs []domain.Comment, loc *time.Location) List[CommentRow] {
	return newList(cs, EmptyComments, func(c domain.Comment) CommentRow { return NewCommentRow(c, loc) })
}

type OngoingCollab struct {
	Title       string
	URL         string
	Owner       string
	MemberCount int
	Members     []string
}

func NewOngoingCollab(c domain.Collaboration) OngoingCollab {
	members := make([]string, 0, c.MemberCount())
	members = append(members, c.Owner.DisplayName())
	for _, u := range c.Collaborators {
		members = append(members, u.DisplayName())
	}
	return OngoingCollab{
		Title:       c.Title,
		URL:         routes.Collaboration(c.Id),
		Owner:       c.Owner.DisplayName(),
		MemberCount: c.MemberCount(),
		Members:     members,
	}
}

func NewOngoingCollabs(cs []domain.Collaboration) List[OngoingCollab] {
	return newList(cs, EmptyOngoingCollabs, NewOngoingCollab)
}

func excerpt(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
