package session

import (
	"context"
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/domain"
)

// Session is the per-request view of one browser session: the opaque cookie
// value the client presented and the ApplicationData loaded for it. It is
// request-local; sharing across requests happens only through the store.
type Session struct {
	// Cookie is the opaque value round-tripped from the client. It is the
	// storage key; the engine never mints a replacement mid-session.
	Cookie string

	// App is the live application data, mutated by controllers and
	// processors and persisted by the bridge.
	App *domain.ApplicationData
}

// New creates a fresh session with empty application data.
func New(cookie string) *Session {
	return &Session{
		Cookie: cookie,
		App:    domain.NewApplicationData(),
	}
}

type contextKey struct{}

// WithSession stores the session on a context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Attach returns a shallow copy of r carrying the session in its context.
func Attach(r *http.Request, s *Session) *http.Request {
	return r.WithContext(WithSession(r.Context(), s))
}

// FromRequest extracts the session placed on the request by the session
// middleware.
func FromRequest(r *http.Request) (*Session, bool) {
	s, ok := r.Context().Value(contextKey{}).(*Session)
	return s, ok
}
