package domain

import "time"

// ChatRoom is a conversation thread owned by a user. Only the title
// bookkeeping lives here; message history belongs to the agent runtime.
type ChatRoom struct {
	ThreadID  string // ULID
	UserID    int64
	Title     string
	CreatedAt time.Time
}
