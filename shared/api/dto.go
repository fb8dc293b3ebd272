package api

import "github.com/mira-dev/mira/shared/domain"

// MaxJoinMessageLen bounds the optional note attached to a join request.
const MaxJoinMessageLen = 500

type JoinCollaborationRequest struct {
	Message string `json:"message,omitempty" validate:"max=500"`
}

type SendDirectMessageRequest struct {
	ReceiverId domain.UserId `json:"receiver_id" validate:"required,gt=0"`
	Message    string        `json:"message" validate:"required"`
}

// SendDirectMessageError is the body the backend answers a failed send with.
type SendDirectMessageError struct {
	Error string `json:"error,omitempty"`
}

type CreateForumRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags,omitempty" validate:"max=10,dive,max=30"`
}

type CreateCollaborationRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	MaxMembers  int    `json:"max_members,omitempty" validate:"omitempty,gte=2,lte=50"`
}

// ListResponse is the envelope every list endpoint answers with.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

// CreatedResponse carries the identifiers of a freshly created resource.
type CreatedResponse struct {
	Id   int64  `json:"id"`
	Slug string `json:"slug,omitempty"`
}

