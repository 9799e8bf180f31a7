package services

import (
	"errors"

	"github.com/yamdb/yamdb-backend/internal/models"
)

// ErrForbidden is returned when an authenticated user lacks the privilege
// for an operation. Handlers map it to 403.
var ErrForbidden = errors.New("you do not have permission to perform this action")

// Actor identifies the authenticated caller of a service operation, as
// carried by the access-token claims.
type Actor struct {
	ID        string
	Username  string
	Role      models.Role
	Superuser bool
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin || a.Superuser }

// IsStaff reports whether the actor may mutate other users' reviews and
// comments.
func (a Actor) IsStaff() bool { return a.IsAdmin() || a.Role == models.RoleModerator }
