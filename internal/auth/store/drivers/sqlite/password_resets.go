package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/parleyhq/parley/internal/auth/domain"
)

type passwordResetsRepo struct {
	db dbtx
}

func (r *passwordResetsRepo) GetResetByEmail(ctx context.Context, email string) (domain.PasswordReset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT email, token, expires_at FROM password_resets WHERE email = ?`, email)
	return scanReset(row)
}

func (r *passwordResetsRepo) GetResetByToken(ctx context.Context, token string) (domain.PasswordReset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT email, token, expires_at FROM password_resets WHERE token = ?`, token)
	return scanReset(row)
}

func (r *passwordResetsRepo) CreateReset(ctx context.Context, reset domain.PasswordReset) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_resets (email, token, expires_at) VALUES (?, ?, ?)`,
		reset.Email, reset.Token, formatTime(reset.ExpiresAt))
	return mapConstraint(err)
}

func (r *passwordResetsRepo) DeleteResetByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE email = ?`, email)
	return err
}

func (r *passwordResetsRepo) DeleteResetByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE token = ?`, token)
	return err
}

// DeleteExpiredResets sweeps rows with a deadline strictly before now.
// Stored values are fixed-width UTC strings (see timeLayout), so the string
// comparison below is chronological.
func (r *passwordResetsRepo) DeleteExpiredResets(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE expires_at < ?`, formatTime(now))
	return err
}

func scanReset(row *sql.Row) (domain.PasswordReset, error) {
	var (
		reset     domain.PasswordReset
		expiresAt string
	)
	if err := row.Scan(&reset.Email, &reset.Token, &expiresAt); err != nil {
		return domain.PasswordReset{}, mapNotFound(err)
	}
	parsed, err := parseTime(expiresAt)
	if err != nil {
		return domain.PasswordReset{}, err
	}
	reset.ExpiresAt = parsed
	return reset, nil
}
