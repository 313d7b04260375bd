package domain

import "errors"

// ErrSessionNotFound is returned when a session cookie cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoSession is returned when persistence is attempted on a request that
// carries no session. The session middleware should make this impossible.
var ErrNoSession = errors.New("no session on request")
