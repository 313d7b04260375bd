// Package middleware provides the HTTP middleware stack: session loading,
// request logging and metrics.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/session"
	"github.com/google/uuid"
)

// SessionLoader resolves the session cookie into a live session attached to
// the request. A request without a cookie gets a fresh one; either way every
// handler downstream can rely on session.FromRequest succeeding.
func SessionLoader(bridge *session.Bridge, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value, fresh := cookieValue(r, bridge.CookieName())

			data, err := bridge.Sessions().LoadOrStart(r.Context(), value)
			if err != nil {
				logger.Error("session load failed", "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if fresh {
				bridge.Refresh(w, value)
			}

			sess := &session.Session{Cookie: value, App: data}
			next.ServeHTTP(w, session.Attach(r, sess))
		})
	}
}

// cookieValue returns the presented cookie value, or mints one when the
// client has none. The minted value is opaque and never derived from user
// input.
func cookieValue(r *http.Request, name string) (value string, fresh bool) {
	if c, err := r.Cookie(name); err == nil && c.Value != "" {
		return c.Value, false
	}
	return uuid.NewString(), true
}
