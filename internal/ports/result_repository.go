package ports

import (
	"context"

	"heroes-marathon-bot/internal/domain"
)

// Port: a sink for finished run results.
type ResultRepository interface {
	SaveResult(ctx context.Context, result domain.Result) error
}

// Read side of the result sink, used by the ops API.
type ResultReader interface {
	// GetResult returns apperrors.ErrResultNotFound when nothing was stored for the chat.
	GetResult(ctx context.Context, chatID int64) (domain.Result, error)
	ListResults(ctx context.Context) ([]domain.Result, error)
}
