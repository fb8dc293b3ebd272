package domain

type UserId = int64

// User is the subset of the backend user that pages display.
type User struct {
	Id     UserId `json:"id" validate:"required,gt=0"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
}

// DisplayName falls back to the email when the backend has no name on record.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
