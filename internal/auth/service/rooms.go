package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/parleyhq/parley/internal/auth/domain"
	"github.com/parleyhq/parley/internal/auth/store"
	"github.com/parleyhq/parley/pkg/idx"
	"github.com/parleyhq/parley/pkg/slogx"
)

var ErrThreadNotFound = errors.New("thread not found")

// RoomsService keeps the per-user chat thread bookkeeping that shares the
// credential store: thread ids, titles and the user details the chat UI
// renders. Message history lives with the agent runtime, not here.
type RoomsService struct {
	Store store.Store
}

// OpenThread mints a new thread id for a user and records its title.
func (s *RoomsService) OpenThread(ctx context.Context, userID int64, title string) (string, error) {
	log := slogx.FromContext(ctx)

	threadID := idx.New().String()
	err := s.Store.ChatRooms().UpsertThreadTitle(ctx, domain.ChatRoom{
		ThreadID: threadID,
		UserID:   userID,
		Title:    title,
	})
	if err != nil {
		log.Error("failed to open thread", slog.Any("error", err))
		return "", err
	}

	log.Debug("thread opened",
		slog.String("thread_id", threadID),
		slog.Int64("user_id", userID),
	)
	return threadID, nil
}

// SetThreadTitle creates-or-updates the title for a thread the user owns.
func (s *RoomsService) SetThreadTitle(ctx context.Context, threadID string, userID int64, title string) error {
	return s.Store.ChatRooms().UpsertThreadTitle(ctx, domain.ChatRoom{
		ThreadID: threadID,
		UserID:   userID,
		Title:    title,
	})
}

// ThreadTitle returns the stored title for a thread owned by the user.
func (s *RoomsService) ThreadTitle(ctx context.Context, threadID string, userID int64) (string, error) {
	title, err := s.Store.ChatRooms().GetThreadTitle(ctx, threadID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrThreadNotFound
		}
		return "", err
	}
	return title, nil
}

// UserThreads lists the user's threads, newest first.
func (s *RoomsService) UserThreads(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	return s.Store.ChatRooms().ListUserThreads(ctx, userID)
}

// UserDetails returns the profile fields the chat UI renders, including the
// reserved is_active/is_admin flags.
func (s *RoomsService) UserDetails(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrAccountNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
