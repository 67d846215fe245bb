package ports

import (
	"context"

	"heroes-marathon-bot/internal/domain"
)

// Port: per-chat conversational state. Implementations must be safe for concurrent
// use across distinct chat ids.
type SessionStore interface {
	// Load returns apperrors.ErrSessionNotFound when the chat has no session.
	Load(ctx context.Context, chatID int64) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}
