package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"heroes-marathon-bot/internal/domain"
	apperrors "heroes-marathon-bot/internal/platform/errors"
)

const keyPrefix = "marathon:session:"

// RedisStore persists sessions as JSON values so a restart does not lose
// participants that are mid-run. Every save refreshes the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// OpenRedis parses url, connects, and pings the server.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}
	return client, nil
}

func sessionKey(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

func (r *RedisStore) Load(ctx context.Context, chatID int64) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load session chat_id=%d: %w", chatID, err)
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("redis decode session chat_id=%d: %w", chatID, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *domain.Session) error {
	if s == nil {
		return apperrors.ErrInvalidInput
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redis encode session chat_id=%d: %w", s.ChatID, err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ChatID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis save session chat_id=%d: %w", s.ChatID, err)
	}
	return nil
}
