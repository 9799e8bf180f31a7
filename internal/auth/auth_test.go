package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationCode_Deterministic(t *testing.T) {
	a := ConfirmationCode("alice")
	b := ConfirmationCode("alice")
	assert.Equal(t, a, b, "repeating a signup must regenerate the same code")
	assert.NotEqual(t, a, ConfirmationCode("alicia"))
	assert.Len(t, a, 36)
}

func TestVerifyConfirmationCode(t *testing.T) {
	code := ConfirmationCode("alice")
	assert.True(t, VerifyConfirmationCode(code, code))
	assert.False(t, VerifyConfirmationCode(code, ConfirmationCode("bob")))
	assert.False(t, VerifyConfirmationCode(code, ""))
	assert.False(t, VerifyConfirmationCode("", code))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", "yamdb", time.Hour)

	tok, err := tm.Generate("u-1", "alice", "moderator", false)
	require.NoError(t, err)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.False(t, claims.Super)
	assert.Equal(t, "yamdb", claims.Issuer)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", "yamdb", time.Hour)
	other := NewTokenManager("secret-b", "yamdb", time.Hour)

	tok, err := tm.Generate("u-1", "alice", "user", false)
	require.NoError(t, err)

	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", "yamdb", -time.Minute)

	tok, err := tm.Generate("u-1", "alice", "user", false)
	require.NoError(t, err)

	_, err = tm.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", "yamdb", time.Hour)
	_, err := tm.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
