package service

import "errors"

// Credential-lifecycle error kinds. All are recoverable and surfaced to the
// caller as-is; the UI layer renders the message text directly. Note that
// ErrAccountNotFound and ErrInvalidCredentials deliberately stay distinct
// kinds with distinct messages. That is an enumeration-oracle weakness, so a
// presentation layer that cares should collapse the two into one generic
// message; the internal kinds remain separate for callers and tests.
var (
	// ErrInvalidRequest reports missing required input fields.
	ErrInvalidRequest = errors.New("missing required fields")

	// ErrAccountExists is returned by SignUp when the pre-check finds the
	// email already registered.
	ErrAccountExists = errors.New("Account already exists")

	// ErrEmailAlreadyRegistered is returned by SignUp when the store's
	// uniqueness constraint rejects the insert (two sign-ups racing on the
	// same email). Distinct from ErrAccountExists because the store enforces
	// uniqueness independently of the service's own check.
	ErrEmailAlreadyRegistered = errors.New("Email already registered")

	// ErrAccountNotFound is returned when no user exists for an email.
	ErrAccountNotFound = errors.New("Account doesn't exist")

	// ErrInvalidCredentials is returned by SignIn on a password mismatch.
	ErrInvalidCredentials = errors.New("Invalid email or password")

	// ErrInvalidOrExpiredToken is returned by ResetPassword when no ledger
	// row holds the presented token.
	ErrInvalidOrExpiredToken = errors.New("Invalid or expired reset token")

	// ErrTokenExpired is returned by ResetPassword when the token exists but
	// its deadline has passed; the row is swept on detection.
	ErrTokenExpired = errors.New("Reset token expired")
)
