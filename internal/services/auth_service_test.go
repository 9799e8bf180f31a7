package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/auth"
	"github.com/yamdb/yamdb-backend/internal/mailer"
	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
	"github.com/yamdb/yamdb-backend/internal/worker"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

type authFixture struct {
	svc   *AuthService
	users *fakeUsers
	mail  *captureMailer
	wp    *worker.Pool
	tm    *auth.TokenManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUsers()
	mail := &captureMailer{}
	wp := worker.NewPool(1)
	tm := auth.NewTokenManager("test-secret", "yamdb", time.Hour)
	svc := NewAuthService(users, tm, mail, wp, "noreply@yamdb.local", slog.Default())
	return &authFixture{svc: svc, users: users, mail: mail, wp: wp, tm: tm}
}

func TestSignup_NewUser(t *testing.T) {
	fx := newAuthFixture(t)

	u, err := fx.svc.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEmpty(t, u.ConfirmationCode)

	fx.wp.Stop()
	msgs := fx.mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice@example.com", msgs[0].To)
	assert.Contains(t, msgs[0].Body, u.ConfirmationCode)
}

func TestSignup_RepeatIsIdempotent(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	first, err := fx.svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	second, err := fx.svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ConfirmationCode, second.ConfirmationCode)

	_, total, err := fx.users.List(ctx, "", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	fx.wp.Stop()
	assert.Len(t, fx.mail.messages(), 2, "every signup re-sends the code")
}

func TestSignup_UsernameTaken(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = fx.svc.Signup(ctx, "alice", "other@example.com")
	var verrs validate.Errs
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "username", verrs[0].Field)
}

func TestSignup_EmailBelongsToAnotherUser(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = fx.svc.Signup(ctx, "bob", "alice@example.com")
	var verrs validate.Errs
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "email", verrs[0].Field)
}

// racingUsers simulates losing a concurrent signup: the username lookup says
// the user does not exist yet, but the insert hits the unique constraint.
type racingUsers struct {
	*fakeUsers
}

func (r *racingUsers) Create(context.Context, models.User) (models.User, error) {
	return models.User{}, repo.ErrConflict
}

func TestSignup_CreateRaceDowngraded(t *testing.T) {
	users := &racingUsers{fakeUsers: newFakeUsers()}
	wp := worker.NewPool(1)
	defer wp.Stop()
	tm := auth.NewTokenManager("test-secret", "yamdb", time.Hour)
	svc := NewAuthService(users, tm, &captureMailer{}, wp, "noreply@yamdb.local", slog.Default())

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com")
	var verrs validate.Errs
	require.ErrorAs(t, err, &verrs, "constraint violation must surface as a field error, not a 500")
	assert.Equal(t, "username", verrs[0].Field)
}

func TestToken_UnknownUsername(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.svc.Token(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestToken_WrongCode(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = fx.svc.Token(ctx, "alice", "00000000-0000-0000-0000-000000000000")
	var verrs validate.Errs
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "confirmation_code", verrs[0].Field)
}

func TestToken_Success(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	u, err := fx.svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	tok, err := fx.svc.Token(ctx, "alice", u.ConfirmationCode)
	require.NoError(t, err)
	require.True(t, strings.Count(tok, ".") == 2, "expected a JWT")

	claims, err := fx.tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
}

func TestToken_CodeMatchesDerivation(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	// the code is derivable from the username alone, no mail needed
	tok, err := fx.svc.Token(ctx, "alice", auth.ConfirmationCode("alice"))
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}
