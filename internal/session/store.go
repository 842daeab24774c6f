package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Factory builds the backend API for a new view-session. Each view-session
// needs its own API value because the backend session lives in its cookies.
type Factory func() (API, error)

type storeEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// Store maps view-session ids to controllers and forgets idle ones.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	ttl     time.Duration
	factory Factory
	logger  *zap.Logger
	now     func() time.Time
}

func NewStore(factory Factory, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		entries: make(map[string]*storeEntry),
		ttl:     ttl,
		factory: factory,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Store) Create() (string, *Controller, error) {
	api, err := s.factory()
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()
	ctrl := NewController(api, s.logger.With(zap.String("viewSession", id)))

	s.mu.Lock()
	s.entries[id] = &storeEntry{controller: ctrl, lastSeen: s.now()}
	s.mu.Unlock()
	return id, ctrl, nil
}

func (s *Store) Get(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.ttl > 0 && now.Sub(entry.lastSeen) > s.ttl {
		delete(s.entries, id)
		return nil, false
	}
	entry.lastSeen = now
	return entry.controller, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes entries idle for longer than the ttl and returns how many were
// removed.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.entries {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(s.now()); removed > 0 {
				s.logger.Info("view sessions expired", zap.Int("removed", removed), zap.Int("active", s.Len()))
			}
		}
	}
}
