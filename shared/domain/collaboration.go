package domain

import "time"

type CollaborationStatus string

const (
	CollaborationOpen      CollaborationStatus = "open"
	CollaborationOngoing   CollaborationStatus = "ongoing"
	CollaborationCompleted CollaborationStatus = "completed"
	CollaborationClosed    CollaborationStatus = "closed"
)

// Collaboration mirrors a project listing. Collaborators never include the owner.
type Collaboration struct {
	Id            int64               `json:"id" validate:"required,gt=0"`
	Title         string              `json:"title" validate:"required"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description"`
	Status        CollaborationStatus `json:"status"`
	Owner         User                `json:"owner"`
	Collaborators []User              `json:"collaborators"`
	CreatedAt     time.Time           `json:"created_at"`
}

// MemberCount counts the owner plus every collaborator.
func (c Collaboration) MemberCount() int {
	return len(c.Collaborators) + 1
}

func (c Collaboration) IsMember(userId UserId) bool {
	if c.Owner.Id == userId {
		return true
	}
	for _, u := range c.Collaborators {
		if u.Id == userId {
			return true
		}
	}
	return false
}
