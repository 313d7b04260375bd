package ports

import (
	"context"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
)

// SessionStore persists the session-scoped ApplicationData blob, keyed by
// the opaque cookie value presented by the client. The engine never invents
// a cookie; it round-trips the one on the request.
type SessionStore interface {
	// Store persists data under the cookie value with the given TTL.
	Store(ctx context.Context, cookie string, data *domain.ApplicationData, ttl time.Duration) error

	// Load retrieves the data for a cookie value.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, cookie string) (*domain.ApplicationData, error)

	// Delete removes the data for a cookie value.
	Delete(ctx context.Context, cookie string) error

	// List returns the cookie values of live sessions.
	List(ctx context.Context) ([]string, error)
}
