package ports

import (
	"context"
	"testing"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract verifies that a SessionStore implementation
// adheres to the interface contract. Adapter test suites call it against
// their concrete store.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	cookie := "contract-session-" + time.Now().Format("20060102150405")
	ttl := time.Hour

	t.Run("Store and Load", func(t *testing.T) {
		data := domain.NewApplicationData()
		data.Appeal.PenaltyIdentifier.CompanyNumber = "NI000123"
		data.Navigation.Permit("/appeal-a-penalty")

		err := store.Store(ctx, cookie, data, ttl)
		require.NoError(t, err, "Store should not return error")

		loaded, err := store.Load(ctx, cookie)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "NI000123", loaded.Appeal.PenaltyIdentifier.CompanyNumber)
		assert.Equal(t, []string{"/appeal-a-penalty"}, loaded.Navigation.Permissions)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+cookie)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Stored Data Is Isolated", func(t *testing.T) {
		data := domain.NewApplicationData()
		data.Navigation.Permit("/step-a")
		require.NoError(t, store.Store(ctx, cookie, data, ttl))

		// Mutating the caller's copy must not leak into the store.
		data.Navigation.Permit("/step-b")

		loaded, err := store.Load(ctx, cookie)
		require.NoError(t, err)
		assert.Equal(t, []string{"/step-a"}, loaded.Navigation.Permissions)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Store(ctx, cookie, domain.NewApplicationData(), ttl))

		err := store.Delete(ctx, cookie)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, cookie)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := cookie + "-1"
		id2 := cookie + "-2"
		_ = store.Store(ctx, id1, domain.NewApplicationData(), ttl)
		_ = store.Store(ctx, id2, domain.NewApplicationData(), ttl)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
