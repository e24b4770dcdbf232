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

func (s *AuthService) resetTTL() time.Duration {
	if s.ResetTTL > 0 {
		return s.ResetTTL
	}
	return DefaultResetTTL
}

// CreateResetToken issues a password-reset token for an account. Re-requests
// inside the validity window are idempotent and return the outstanding token
// unchanged; the boundary is inclusive, so a token expiring at exactly the
// current instant is still handed back. Once the window has passed the stale
// row is replaced with a fresh token in a single transaction.
func (s *AuthService) CreateResetToken(ctx context.Context, email string) (string, error) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// Account existence is checked against the user table. (The original
	// backend consulted the ledger instead, which locked out any user who
	// had never requested a reset before.)
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("reset token requested for unknown email")
			return "", ErrAccountNotFound
		}
		log.Error("failed to look up user", slog.Any("error", err))
		return "", err
	}

	outstanding, err := s.Store.PasswordResets().GetResetByEmail(ctx, email)
	if err == nil && !now.After(outstanding.ExpiresAt) {
		log.Debug("returning outstanding reset token",
			slog.Time("expires_at", outstanding.ExpiresAt),
		)
		return outstanding.Token, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up reset token", slog.Any("error", err))
		return "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate reset token", slog.Any("error", err))
		return "", err
	}

	reset := domain.PasswordReset{
		Email:     email,
		Token:     token,
		ExpiresAt: now.Add(s.resetTTL()),
	}

	// Replace any stale row and insert the fresh one atomically so the
	// ledger never holds two tokens for the same email.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResets().DeleteResetByEmail(ctx, email); err != nil {
			return err
		}
		return tx.PasswordResets().CreateReset(ctx, reset)
	})
	if err != nil {
		log.Error("failed to store reset token", slog.Any("error", err))
		return "", err
	}

	log.Info("reset token issued", slog.Time("expires_at", reset.ExpiresAt))
	return token, nil
}

// ResetPassword redeems a token and sets a new password. The token is single
// use: the password update and the ledger deletion commit in one transaction
// so a crash can neither leave a consumed token redeemable nor burn the token
// without changing the password. An expired token is swept on detection.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	reset, err := s.Store.PasswordResets().GetResetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("reset attempted with unknown token")
			return ErrInvalidOrExpiredToken
		}
		log.Error("failed to look up reset token", slog.Any("error", err))
		return err
	}

	if time.Now().UTC().After(reset.ExpiresAt) {
		if err := s.Store.PasswordResets().DeleteResetByToken(ctx, token); err != nil {
			log.Error("failed to sweep expired reset token", slog.Any("error", err))
			return err
		}
		log.Warn("reset attempted with expired token",
			slog.Time("expired_at", reset.ExpiresAt),
		)
		return ErrTokenExpired
	}

	newHash, err := cryptox.HashPassword(s.Scheme, newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, reset.Email, newHash); err != nil {
			return err
		}
		return tx.PasswordResets().DeleteResetByToken(ctx, token)
	})
	if err != nil {
		log.Error("failed to apply password reset", slog.Any("error", err))
		return err
	}

	log.Info("password reset applied")
	return nil
}

// FlushExpiredTokens removes every ledger row whose deadline has passed.
// Intended to run at process start and on a schedule; idempotent.
func (s *AuthService) FlushExpiredTokens(ctx context.Context) error {
	return s.Store.PasswordResets().DeleteExpiredResets(ctx, time.Now().UTC())
}
