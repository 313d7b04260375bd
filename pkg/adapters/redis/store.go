package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces session keys in a shared Redis.
const DefaultPrefix = "lfpappeal:session:"

// Store implements ports.SessionStore on Redis. Each session is one JSON
// value under prefix+cookie with a key TTL; a sorted-set index (scored by
// expiry) supports List with lazy cleanup of expired members.
type Store struct {
	client     *backend.Client
	prefix     string
	defaultTTL time.Duration
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets the TTL applied when a save passes none.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.defaultTTL = ttl
	}
}

// NewFromClient creates a Store over an existing Redis client.
func NewFromClient(client *backend.Client, opts ...StoreOption) *Store {
	s := &Store{
		client:     client,
		prefix:     DefaultPrefix,
		defaultTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(cookie string) string {
	return s.prefix + cookie
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Store persists the session data with the given TTL and indexes it.
func (s *Store) Store(ctx context.Context, cookie string, data *domain.ApplicationData, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(cookie), payload, ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(time.Now().Add(ttl).Unix()),
		Member: cookie,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error storing session: %w", err)
	}
	return nil
}

// Load retrieves the session data for a cookie value.
func (s *Store) Load(ctx context.Context, cookie string) (*domain.ApplicationData, error) {
	payload, err := s.client.Get(ctx, s.key(cookie)).Bytes()
	if err == backend.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading session: %w", err)
	}

	var data domain.ApplicationData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return &data, nil
}

// Delete removes the session and its index entry.
func (s *Store) Delete(ctx context.Context, cookie string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(cookie))
	pipe.ZRem(ctx, s.indexKey(), cookie)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error deleting session: %w", err)
	}
	return nil
}

// List returns live session cookie values, lazily pruning expired index
// members. Keys expire on their own; the index catches up here.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", now).Err(); err != nil {
		return nil, fmt.Errorf("redis error pruning session index: %w", err)
	}

	members, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing sessions: %w", err)
	}
	return members, nil
}
