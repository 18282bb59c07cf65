package models

import "time"

// Role is the closed set of account roles, ordered by increasing
// content-mutation privilege. Only ADMIN may change other users' roles.
type Role string

const (
	RoleUser        Role = "USER"
	RoleContributor Role = "CONTRIBUTOR"
	RoleEditor      Role = "EDITOR"
	RoleAdmin       Role = "ADMIN"
)

// ParseRole maps a string onto the closed Role enum. The second return
// value is false for anything outside the enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleContributor, RoleEditor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// CanAuthor reports whether the role may create articles.
func (r Role) CanAuthor() bool {
	switch r {
	case RoleContributor, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FirstName    *string   `json:"first_name,omitempty"`
	LastName     *string   `json:"last_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
