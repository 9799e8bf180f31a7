package models

import (
	"errors"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole rejects anything outside the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

type User struct {
	ID               string    `json:"-"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Bio              string    `json:"bio"`
	Role             Role      `json:"role"`
	IsSuperuser      bool      `json:"-"`
	ConfirmationCode string    `json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// IsAdmin reports whether the user holds admin privileges.
// Superusers are equivalent to admins everywhere.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin || u.IsSuperuser }

// IsStaff reports whether the user may moderate other users' content.
func (u *User) IsStaff() bool { return u.IsAdmin() || u.Role == RoleModerator }
