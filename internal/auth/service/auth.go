package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/parleyhq/parley/internal/auth/domain"
	"github.com/parleyhq/parley/internal/auth/store"
	"github.com/parleyhq/parley/pkg/cryptox"
	"github.com/parleyhq/parley/pkg/slogx"
)

// DefaultResetTTL is how long a freshly minted reset token stays redeemable.
const DefaultResetTTL = 30 * time.Minute

// AuthService orchestrates sign-up, sign-in and the password-reset token
// lifecycle over the credential store and the reset-token ledger.
type AuthService struct {
	Store store.Store

	// Scheme selects the digest used for new passwords. Zero value is the
	// legacy deterministic sha256 scheme; verification always dispatches on
	// the stored hash format regardless of this setting.
	Scheme cryptox.Scheme

	// ResetTTL overrides the reset-token validity window. Zero means
	// DefaultResetTTL.
	ResetTTL time.Duration
}

// SignUp registers a new account and returns the store-assigned user id.
// The lookup before the insert is a fast path only; racing sign-ups on the
// same email are resolved by the store's uniqueness constraint, which is
// surfaced as ErrEmailAlreadyRegistered.
func (s *AuthService) SignUp(
	ctx context.Context,
	email string,
	password string,
	firstName string,
	lastName string,
) (int64, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" || firstName == "" {
		log.Warn("sign-up missing required fields")
		return 0, ErrInvalidRequest
	}

	passwordHash, err := cryptox.HashPassword(s.Scheme, password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return 0, err
	}

	_, err = s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		log.Warn("sign-up attempted with registered email")
		return 0, ErrAccountExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up user", slog.Any("error", err))
		return 0, err
	}

	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("sign-up lost uniqueness race")
			return 0, ErrEmailAlreadyRegistered
		}
		log.Error("failed to create user", slog.Any("error", err))
		return 0, err
	}

	log.Info("user registered", slog.Int64("user_id", id))
	return id, nil
}

// SignIn checks credentials and returns the user id on success. No session
// state is created; the caller owns whatever happens with the identity.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (int64, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("sign-in attempted with unknown email")
			return 0, ErrAccountNotFound
		}
		log.Error("failed to look up user", slog.Any("error", err))
		return 0, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("sign-in password mismatch", slog.Int64("user_id", user.ID))
			return 0, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return 0, err
	}

	log.Debug("sign-in succeeded", slog.Int64("user_id", user.ID))
	return user.ID, nil
}
