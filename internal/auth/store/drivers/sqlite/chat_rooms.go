package sqlite

import (
	"context"
	"database/sql"

	"github.com/parleyhq/parley/internal/auth/domain"
)

type chatRoomsRepo struct {
	db dbtx
}

// UpsertThreadTitle creates the thread row if missing and sets its title.
// created_at is assigned by the schema default on first insert and kept on
// subsequent title changes.
func (r *chatRoomsRepo) UpsertThreadTitle(ctx context.Context, room domain.ChatRoom) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_rooms (thread_id, user_id, thread_title)
		 VALUES (?, ?, ?)
		 ON CONFLICT (thread_id) DO UPDATE SET thread_title = excluded.thread_title
		 WHERE chat_rooms.user_id = excluded.user_id`,
		room.ThreadID, room.UserID, mapStringNull(room.Title))
	return err
}

func (r *chatRoomsRepo) GetThreadTitle(ctx context.Context, threadID string, userID int64) (string, error) {
	var title sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT thread_title FROM chat_rooms WHERE thread_id = ? AND user_id = ?`,
		threadID, userID).Scan(&title)
	if err != nil {
		return "", mapNotFound(err)
	}
	return mapNullString(title), nil
}

func (r *chatRoomsRepo) ListUserThreads(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT thread_id, user_id, thread_title, created_at
		 FROM chat_rooms
		 WHERE user_id = ?
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ChatRoom
	for rows.Next() {
		var (
			room      domain.ChatRoom
			title     sql.NullString
			createdAt string
		)
		if err := rows.Scan(&room.ThreadID, &room.UserID, &title, &createdAt); err != nil {
			return nil, err
		}
		room.Title = mapNullString(title)
		if room.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}
