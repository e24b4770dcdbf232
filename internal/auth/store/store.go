package store

import (
	"context"
	"errors"
	"time"

	"github.com/parleyhq/parley/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a Tx escape hatch for operations that must apply more than
// one write atomically (token reissue, password reset).
type Store interface {
	Users() Users
	PasswordResets() PasswordResets
	ChatRooms() ChatRooms

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-write operations.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by its assigned id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during sign-in and sign-up pre-checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns the store-assigned id.
	// Returns ErrAlreadyExists when the email uniqueness constraint fires;
	// the constraint, not the caller's pre-check, is the safety mechanism
	// for racing sign-ups.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdatePasswordHash replaces the stored digest for an email.
	UpdatePasswordHash(ctx context.Context, email string, newHash string) error
}

type PasswordResets interface {
	// GetResetByEmail returns the outstanding ledger row for an email.
	GetResetByEmail(ctx context.Context, email string) (domain.PasswordReset, error)

	// GetResetByToken returns the ledger row holding the given token value.
	GetResetByToken(ctx context.Context, token string) (domain.PasswordReset, error)

	// CreateReset inserts a new ledger row. At most one row may exist per
	// email (email is the primary key).
	CreateReset(ctx context.Context, r domain.PasswordReset) error

	// DeleteResetByEmail removes the ledger row for an email, if any.
	DeleteResetByEmail(ctx context.Context, email string) error

	// DeleteResetByToken removes the ledger row holding a token, if any.
	DeleteResetByToken(ctx context.Context, token string) error

	// DeleteExpiredResets removes every row whose deadline is strictly
	// before now. Housekeeping; idempotent.
	DeleteExpiredResets(ctx context.Context, now time.Time) error
}

type ChatRooms interface {
	// UpsertThreadTitle creates the thread row if missing and sets its title.
	UpsertThreadTitle(ctx context.Context, room domain.ChatRoom) error

	// GetThreadTitle returns the title of a thread owned by the user.
	GetThreadTitle(ctx context.Context, threadID string, userID int64) (string, error)

	// ListUserThreads returns the user's threads, newest first.
	ListUserThreads(ctx context.Context, userID int64) ([]domain.ChatRoom, error)
}
