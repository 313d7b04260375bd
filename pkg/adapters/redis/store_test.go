package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/civicforms/lfpappeal/pkg/adapters/redis"
	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)

	store := redis.NewFromClient(client)
	ports.RunSessionStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newTestClient(t)

	store := redis.NewFromClient(client)
	ctx := context.Background()
	cookie := "session-ttl"
	data := domain.NewApplicationData()
	data.Navigation.Permit("/appeal-a-penalty")

	err := store.Store(ctx, cookie, data, 1*time.Second)
	assert.NoError(t, err)

	sessions, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, sessions, cookie)

	// Fast forward past the key TTL.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, cookie)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Index cleanup is lazy and keyed on wall-clock scores, so wait out
	// the real second before asking List to prune.
	time.Sleep(1200 * time.Millisecond)

	sessions, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newTestClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	cookie := "my-session"

	err := store.Store(ctx, cookie, domain.NewApplicationData(), time.Hour)
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:my-session"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, cookie)
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	_, client := newTestClient(t)

	locker := redis.NewLocker(client, "custom:app:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-1", 5*time.Second)
	require.NoError(t, err)

	// A second acquisition must not succeed while the lock is held.
	blockedCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blockedCtx, "session-1", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	// Released: acquisition succeeds again.
	unlock2, err := locker.Lock(ctx, "session-1", 5*time.Second)
	require.NoError(t, err)
	_ = unlock2(ctx)
}
