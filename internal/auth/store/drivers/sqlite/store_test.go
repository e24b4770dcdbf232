package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/parleyhq/parley/internal/auth/domain"
	"github.com/parleyhq/parley/internal/auth/store"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a fresh database in a temp dir. A file rather than
// :memory: because database/sql pools connections and each pooled :memory:
// connection would see its own empty database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("create assigns incrementing ids", func(t *testing.T) {
		id, err := s.Users().CreateUser(ctx, domain.User{
			FirstName: "A", Email: "a@x.com", PasswordHash: "h1",
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, id)

		id, err = s.Users().CreateUser(ctx, domain.User{
			FirstName: "B", LastName: "Bee", Email: "b@x.com", PasswordHash: "h2",
		})
		require.NoError(t, err)
		require.EqualValues(t, 2, id)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, domain.User{
			FirstName: "A2", Email: "a@x.com", PasswordHash: "h3",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("get by email", func(t *testing.T) {
		u, err := s.Users().GetUserByEmail(ctx, "b@x.com")
		require.NoError(t, err)
		require.EqualValues(t, 2, u.ID)
		require.Equal(t, "Bee", u.LastName)
		require.True(t, u.IsActive)
		require.False(t, u.IsAdmin)
	})

	t.Run("missing last name reads back empty", func(t *testing.T) {
		u, err := s.Users().GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Empty(t, u.LastName)
	})

	t.Run("unknown email is ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByEmail(ctx, "nobody@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update password hash", func(t *testing.T) {
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, "a@x.com", "h9"))

		u, err := s.Users().GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, "h9", u.PasswordHash)
	})

	t.Run("get by id", func(t *testing.T) {
		u, err := s.Users().GetUserByID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "a@x.com", u.Email)

		_, err = s.Users().GetUserByID(ctx, 99)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPasswordResetsRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	expiry := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	reset := domain.PasswordReset{Email: "a@x.com", Token: "tok-1", ExpiresAt: expiry}
	require.NoError(t, s.PasswordResets().CreateReset(ctx, reset))

	t.Run("one row per email", func(t *testing.T) {
		err := s.PasswordResets().CreateReset(ctx, domain.PasswordReset{
			Email: "a@x.com", Token: "tok-other", ExpiresAt: expiry,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup by email and token round trips expiry", func(t *testing.T) {
		got, err := s.PasswordResets().GetResetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, "tok-1", got.Token)
		require.True(t, got.ExpiresAt.Equal(expiry))

		got, err = s.PasswordResets().GetResetByToken(ctx, "tok-1")
		require.NoError(t, err)
		require.Equal(t, "a@x.com", got.Email)
	})

	t.Run("tolerates timezone-naive stored values as UTC", func(t *testing.T) {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO password_resets (email, token, expires_at) VALUES (?, ?, ?)`,
			"naive@x.com", "tok-naive", "2030-06-01T15:04:05")
		require.NoError(t, err)

		got, err := s.PasswordResets().GetResetByEmail(ctx, "naive@x.com")
		require.NoError(t, err)
		require.True(t, got.ExpiresAt.Equal(time.Date(2030, 6, 1, 15, 4, 5, 0, time.UTC)))
	})

	t.Run("delete by token and email", func(t *testing.T) {
		require.NoError(t, s.PasswordResets().DeleteResetByToken(ctx, "tok-naive"))
		_, err := s.PasswordResets().GetResetByEmail(ctx, "naive@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		// deleting an absent row is not an error
		require.NoError(t, s.PasswordResets().DeleteResetByEmail(ctx, "naive@x.com"))
	})

	t.Run("sweep removes all and only strictly-past rows", func(t *testing.T) {
		now := time.Now().UTC()
		require.NoError(t, s.PasswordResets().CreateReset(ctx, domain.PasswordReset{
			Email: "old@x.com", Token: "tok-old", ExpiresAt: now.Add(-time.Minute),
		}))

		require.NoError(t, s.PasswordResets().DeleteExpiredResets(ctx, now))

		_, err := s.PasswordResets().GetResetByEmail(ctx, "old@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		// the 2030 row survives
		_, err = s.PasswordResets().GetResetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
	})
}

func TestChatRoomsRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	userID, err := s.Users().CreateUser(ctx, domain.User{
		FirstName: "A", Email: "a@x.com", PasswordHash: "h",
	})
	require.NoError(t, err)

	room := domain.ChatRoom{ThreadID: "01THREAD", UserID: userID, Title: "First chat"}
	require.NoError(t, s.ChatRooms().UpsertThreadTitle(ctx, room))

	t.Run("upsert updates title in place", func(t *testing.T) {
		room.Title = "Renamed"
		require.NoError(t, s.ChatRooms().UpsertThreadTitle(ctx, room))

		title, err := s.ChatRooms().GetThreadTitle(ctx, "01THREAD", userID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", title)
	})

	t.Run("title lookup scoped to owner", func(t *testing.T) {
		_, err := s.ChatRooms().GetThreadTitle(ctx, "01THREAD", userID+1)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list user threads", func(t *testing.T) {
		require.NoError(t, s.ChatRooms().UpsertThreadTitle(ctx, domain.ChatRoom{
			ThreadID: "02THREAD", UserID: userID, Title: "Second chat",
		}))

		rooms, err := s.ChatRooms().ListUserThreads(ctx, userID)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		for _, r := range rooms {
			require.Equal(t, userID, r.UserID)
			require.False(t, r.CreatedAt.IsZero())
		}
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := domain.PasswordReset{
		Email: "tx@x.com", Token: "tok-tx", ExpiresAt: time.Now().UTC().Add(time.Hour),
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResets().CreateReset(ctx, boom); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.PasswordResets().GetResetByEmail(ctx, "tx@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	t.Run("round trips canonical format", func(t *testing.T) {
		now := time.Date(2026, 8, 28, 9, 30, 0, 123456789, time.UTC)
		got, err := parseTime(formatTime(now))
		require.NoError(t, err)
		require.True(t, got.Equal(now))
	})

	t.Run("accepts offsets", func(t *testing.T) {
		got, err := parseTime("2026-08-28T11:30:00+02:00")
		require.NoError(t, err)
		require.True(t, got.Equal(time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)))
	})

	t.Run("treats naive values as UTC", func(t *testing.T) {
		for _, raw := range []string{
			"2026-08-28T09:30:00",
			"2026-08-28 09:30:00",
			"2026-08-28T09:30:00.5",
		} {
			got, err := parseTime(raw)
			require.NoError(t, err)
			require.Equal(t, time.UTC, got.Location())
			require.Equal(t, 9, got.Hour())
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := parseTime("yesterday")
		require.Error(t, err)
	})
}
