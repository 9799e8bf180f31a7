package services

import (
	"context"
	"errors"

	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type UserService struct {
	users repo.Users
}

func NewUserService(users repo.Users) *UserService { return &UserService{users: users} }

// UserPatch carries partial profile updates; nil fields are left unchanged.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *models.Role
}

func (s *UserService) List(ctx context.Context, search string, limit, offset int) ([]models.User, int, error) {
	return s.users.List(ctx, search, limit, offset)
}

func (s *UserService) Get(ctx context.Context, username string) (models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create is the admin-only user creation path. The role defaults to "user".
func (s *UserService) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	created, err := s.users.Create(ctx, u)
	if errors.Is(err, repo.ErrConflict) {
		return models.User{}, validate.Field("username", "username or email already in use")
	}
	return created, err
}

// UpdateMe updates the calling user's own profile. A non-admin caller may
// submit a role change, but it is silently ignored: the request succeeds and
// the stored role stays as it was.
func (s *UserService) UpdateMe(ctx context.Context, userID string, p UserPatch) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !u.IsAdmin() {
		p.Role = nil
	}
	return s.apply(ctx, u, p)
}

// Update is the admin path, keyed by username; it may change any field
// including the role.
func (s *UserService) Update(ctx context.Context, username string, p UserPatch) (models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	return s.apply(ctx, u, p)
}

func (s *UserService) apply(ctx context.Context, u models.User, p UserPatch) (models.User, error) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	updated, err := s.users.Update(ctx, u)
	if errors.Is(err, repo.ErrConflict) {
		return models.User{}, validate.Field("username", "username or email already in use")
	}
	return updated, err
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}
