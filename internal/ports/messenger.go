package ports

import (
	"context"

	"heroes-marathon-bot/internal/domain"
)

// Messenger delivers outbound replies through the chat transport.
type Messenger interface {
	Send(ctx context.Context, reply domain.Reply) error
}
