package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/civicforms/lfpappeal/internal/logging"
	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc
}

// Manager serializes store access per cookie value. Within one process it
// uses reference-counted mutexes to garbage collect idle locks; across
// replicas an optional DistributedLocker extends the guarantee. It does not
// prevent last-write-wins between requests that have already loaded their
// own copy of the data.
type Manager struct {
	store ports.SessionStore
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithTTL sets the session TTL passed to the store on save.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// DefaultTTL is applied when no TTL option is given.
const DefaultTTL = time.Hour

// NewManager creates a session Manager over the given store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		ttl:    DefaultTTL,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(cookie) after
// unlocking.
func (m *Manager) acquire(cookie string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[cookie]
	if !exists {
		entry = &lockEntry{}
		m.locks[cookie] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(cookie string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[cookie]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, cookie)
	}
}

// Load retrieves an existing session's data from the store.
func (m *Manager) Load(ctx context.Context, cookie string) (*domain.ApplicationData, error) {
	var data *domain.ApplicationData
	err := m.WithLock(ctx, cookie, func(ctx context.Context) error {
		var err error
		data, err = m.store.Load(ctx, cookie)
		return err
	})
	return data, err
}

// LoadOrStart tries to load a session. If not found, it initializes an
// empty ApplicationData record and persists it to reserve the cookie.
func (m *Manager) LoadOrStart(ctx context.Context, cookie string) (*domain.ApplicationData, error) {
	var data *domain.ApplicationData
	err := m.WithLock(ctx, cookie, func(ctx context.Context) error {
		var err error
		data, err = m.store.Load(ctx, cookie)
		if err == nil {
			return nil
		}

		if err != domain.ErrSessionNotFound {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		data = domain.NewApplicationData()
		if err := m.store.Store(ctx, cookie, data, m.ttl); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return data, err
}

// Save persists the session data.
func (m *Manager) Save(ctx context.Context, cookie string, data *domain.ApplicationData) error {
	return m.WithLock(ctx, cookie, func(ctx context.Context) error {
		return m.store.Store(ctx, cookie, data, m.ttl)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, cookie string) error {
	return m.WithLock(ctx, cookie, func(ctx context.Context) error {
		return m.store.Delete(ctx, cookie)
	})
}

// TTL returns the configured session TTL.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes fn while holding the lock for the cookie.
func (m *Manager) WithLock(ctx context.Context, cookie string, fn func(context.Context) error) error {
	entry := m.acquire(cookie)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(cookie)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, cookie, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"cookie", cookie,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
