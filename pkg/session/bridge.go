package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/civicforms/lfpappeal/internal/logging"
	"github.com/civicforms/lfpappeal/pkg/domain"
)

// DefaultCookieName is the session cookie issued when none is configured.
const DefaultCookieName = "penalty_appeal_session"

// Bridge is the session persistence bridge: it writes the session's
// ApplicationData through the Manager and re-issues the response cookie
// carrying the same value the client presented. The refresh matters because
// the store call may have rotated server-side state the client must see
// reflected in cookie expiry.
type Bridge struct {
	sessions     *Manager
	cookieName   string
	cookieDomain string
	secure       bool
	logger       *slog.Logger
}

// BridgeOption configures the Bridge.
type BridgeOption func(*Bridge)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) BridgeOption {
	return func(b *Bridge) {
		b.cookieName = name
	}
}

// WithCookieDomain sets the Domain attribute on refreshed cookies.
func WithCookieDomain(domain string) BridgeOption {
	return func(b *Bridge) {
		b.cookieDomain = domain
	}
}

// WithSecureCookies toggles the Secure attribute (off for local dev).
func WithSecureCookies(secure bool) BridgeOption {
	return func(b *Bridge) {
		b.secure = secure
	}
}

// WithBridgeLogger configures a logger.
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// NewBridge creates a persistence bridge over the session Manager.
func NewBridge(sessions *Manager, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		sessions:   sessions,
		cookieName: DefaultCookieName,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CookieName returns the configured session cookie name.
func (b *Bridge) CookieName() string {
	return b.cookieName
}

// Sessions returns the underlying Manager.
func (b *Bridge) Sessions() *Manager {
	return b.sessions
}

// Persist stores the request's session and refreshes the response cookie.
// It fails with domain.ErrNoSession when the request carries none; the
// session middleware should make that impossible.
func (b *Bridge) Persist(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sess, ok := FromRequest(r)
	if !ok || sess == nil {
		return domain.ErrNoSession
	}

	if err := b.sessions.Save(ctx, sess.Cookie, sess.App); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	b.Refresh(w, sess.Cookie)
	return nil
}

// Refresh re-issues the session cookie with the given value. The value is
// always the one the client presented; only the attributes are ours.
func (b *Bridge) Refresh(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     b.cookieName,
		Value:    value,
		Path:     "/",
		Domain:   b.cookieDomain,
		HttpOnly: true,
		Secure:   b.secure,
		MaxAge:   int(b.sessions.TTL().Seconds()),
	})
}
