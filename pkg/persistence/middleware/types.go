package middleware

import "github.com/civicforms/lfpappeal/pkg/ports"

// Middleware wraps a SessionStore to add behavior (encryption, masking).
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies middlewares left to right, so the first listed is the
// outermost: Chain(store, PII, Encryption) masks before it seals.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
