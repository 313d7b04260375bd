package memory

import (
	"context"
	"testing"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_TTLExpiry(t *testing.T) {
	store := NewStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	ctx := context.Background()
	require.NoError(t, store.Store(ctx, "c1", domain.NewApplicationData(), time.Minute))

	_, err := store.Load(ctx, "c1")
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)

	_, err = store.Load(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	ctx := context.Background()
	require.NoError(t, store.Store(ctx, "c1", domain.NewApplicationData(), 0))

	current = current.Add(24 * time.Hour)

	_, err := store.Load(ctx, "c1")
	assert.NoError(t, err)
}
