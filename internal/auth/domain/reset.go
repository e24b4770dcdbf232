package domain

import "time"

// PasswordReset models one outstanding reset token for an email. The ledger
// keys on email, so issuing a new token replaces any previous row rather
// than accumulating history.
type PasswordReset struct {
	Email     string
	Token     string    // opaque URL-safe random value, handed to the user
	ExpiresAt time.Time // UTC validity deadline
}
