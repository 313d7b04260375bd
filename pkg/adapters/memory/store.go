package memory

import (
	"context"
	"sync"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use. Intended for tests and local development; it
// honors TTLs lazily, on read.
type Store struct {
	data map[string]entry
	mu   sync.RWMutex

	// now is swappable for TTL tests.
	now func() time.Time
}

type entry struct {
	data      *domain.ApplicationData
	expiresAt time.Time
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Store persists a deep copy so callers can keep mutating their own.
func (s *Store) Store(ctx context.Context, cookie string, data *domain.ApplicationData, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[cookie] = entry{data: data.Clone(), expiresAt: expiresAt}
	return nil
}

// Load retrieves a copy of the stored data.
func (s *Store) Load(ctx context.Context, cookie string) (*domain.ApplicationData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[cookie]
	if !ok || s.expired(e) {
		return nil, domain.ErrSessionNotFound
	}
	return e.data.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, cookie string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, cookie)
	return nil
}

// List returns live session cookie values.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for cookie, e := range s.data {
		if s.expired(e) {
			continue
		}
		sessions = append(sessions, cookie)
	}
	return sessions, nil
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}
