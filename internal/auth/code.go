package auth

import (
	"crypto/subtle"

	"github.com/google/uuid"
)

// ConfirmationCode derives the signup confirmation code for a username as a
// name-based UUID (v3) over the DNS namespace. Derivation is deterministic:
// signing up again with the same username regenerates the same code. That
// makes re-signup idempotent, and also makes the code guessable from the
// username; the behavior is kept as-is for compatibility with existing
// clients.
func ConfirmationCode(username string) string {
	return uuid.NewMD5(uuid.NameSpaceDNS, []byte(username)).String()
}

// VerifyConfirmationCode compares codes byte-for-byte in constant time.
func VerifyConfirmationCode(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
