package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/auth"
	"github.com/yamdb/yamdb-backend/internal/mailer"
	"github.com/yamdb/yamdb-backend/internal/metrics"
	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
	"github.com/yamdb/yamdb-backend/internal/worker"
)

// AuthService implements the signup / token-exchange flow:
// unregistered -> pending confirmation -> active, where "pending" is
// represented by possession of the mailed confirmation code.
type AuthService struct {
	users repo.Users
	tm    *auth.TokenManager
	mail  mailer.Mailer
	wp    *worker.Pool
	from  string
	log   *slog.Logger
}

func NewAuthService(users repo.Users, tm *auth.TokenManager, mail mailer.Mailer, wp *worker.Pool, from string, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tm: tm, mail: mail, wp: wp, from: from, log: log}
}

// Signup registers a username/email pair (or refreshes an existing one) and
// mails the confirmation code. The code is derived from the username, so
// repeating a signup regenerates the same code. The code never appears in
// the response.
func (s *AuthService) Signup(ctx context.Context, username, email string) (models.User, error) {
	code := auth.ConfirmationCode(username)

	u, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if u.Email != email {
			return models.User{}, validate.Field("username", "username is already taken")
		}
		if err := s.users.SetConfirmationCode(ctx, u.ID, code); err != nil {
			return models.User{}, err
		}
		u.ConfirmationCode = code

	case errors.Is(err, repo.ErrNotFound):
		// email squatting: the email may not belong to a different username
		if other, err2 := s.users.GetByEmail(ctx, email); err2 == nil {
			if other.Username != username {
				return models.User{}, validate.Field("email", "email belongs to an existing user")
			}
		} else if !errors.Is(err2, repo.ErrNotFound) {
			return models.User{}, err2
		}

		u, err = s.users.Create(ctx, models.User{
			Username:         username,
			Email:            email,
			Role:             models.RoleUser,
			ConfirmationCode: code,
		})
		if errors.Is(err, repo.ErrConflict) {
			// lost a concurrent signup race; the stored row wins
			return models.User{}, validate.Field("username", "user with these credentials already exists")
		}
		if err != nil {
			return models.User{}, err
		}

	default:
		return models.User{}, err
	}

	s.sendCode(u)
	metrics.SignupsTotal.Inc()
	return u, nil
}

// sendCode dispatches the confirmation mail on the worker pool; the request
// never waits on, or fails because of, the mail channel.
func (s *AuthService) sendCode(u models.User) {
	msg := mailer.Message{
		To:      u.Email,
		From:    s.from,
		Subject: "YaMDb confirmation code",
		Body: fmt.Sprintf("Hello, %s.\nYour confirmation code for the API: %s",
			u.Username, u.ConfirmationCode),
	}
	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mail.Send(ctx, msg); err != nil {
			s.log.Error("confirmation mail", "to", msg.To, "err", err)
		}
	})
}

// Token exchanges a confirmation code for a signed access token.
// Unknown username is a 404; a wrong code is a validation error.
func (s *AuthService) Token(ctx context.Context, username, code string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !auth.VerifyConfirmationCode(u.ConfirmationCode, code) {
		return "", validate.Field("confirmation_code", "invalid confirmation code")
	}
	tok, err := s.tm.Generate(u.ID, u.Username, string(u.Role), u.IsSuperuser)
	if err != nil {
		return "", err
	}
	metrics.TokensIssuedTotal.Inc()
	return tok, nil
}
