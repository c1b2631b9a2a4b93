// Package memory disponibiliza o storage em memória, usado por padrão.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/JeanGrijp/secure-api/internal/core/domain"
	"github.com/JeanGrijp/secure-api/internal/core/ports"
)

// Storage mantém os contadores por chave durante toda a vida do processo.
type Storage struct {
	mu     sync.Mutex
	now    func() time.Time
	states map[string]domain.WindowState
	blocks map[string]time.Time
}

var _ ports.Storage = (*Storage)(nil)

type Option func(*Storage)

// WithClock substitui time.Now, útil em testes.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) { s.now = now }
}

func New(opts ...Option) *Storage {
	s := &Storage{
		now:    time.Now,
		states: make(map[string]domain.WindowState),
		blocks: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Increment(_ context.Context, key string, window time.Duration) (domain.WindowState, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[key]
	if !ok || !now.Before(state.ResetAt(window)) {
		state = domain.WindowState{WindowStart: now}
	}
	state.Count++
	s.states[key] = state

	return state, nil
}

func (s *Storage) IsBlocked(_ context.Context, key string) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	expiration, ok := s.blocks[key]
	if !ok {
		return false, nil
	}
	if !now.Before(expiration) {
		delete(s.blocks, key)
		return false, nil
	}
	return true, nil
}

func (s *Storage) SetBlock(_ context.Context, key string, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if duration <= 0 {
		delete(s.blocks, key)
		return nil
	}
	s.blocks[key] = s.now().Add(duration)
	return nil
}
