package sessions

import (
	"context"
	"sync"

	"heroes-marathon-bot/internal/domain"
	apperrors "heroes-marathon-bot/internal/platform/errors"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]domain.Session)}
}

func (m *MemoryStore) Load(_ context.Context, chatID int64) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return clone(s), nil
}

func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	if s == nil {
		return apperrors.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ChatID] = *clone(*s)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// clone copies the pointer fields so callers never share state with the store.
func clone(s domain.Session) *domain.Session {
	if s.Start != nil {
		start := *s.Start
		s.Start = &start
	}
	if s.Finish != nil {
		finish := *s.Finish
		s.Finish = &finish
	}
	if s.DistanceKm != nil {
		km := *s.DistanceKm
		s.DistanceKm = &km
	}
	return &s
}
