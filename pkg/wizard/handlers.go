package wizard

import (
	"fmt"
	"net/http"
)

// ActionHandler is a named alternate POST handler selected via the "action"
// query parameter. It owns the full response; the default
// validate/sanitize/process/persist/redirect pipeline is bypassed entirely.
type ActionHandler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// ActionHandlerFunc adapts a function to the ActionHandler interface.
type ActionHandlerFunc func(w http.ResponseWriter, r *http.Request)

func (f ActionHandlerFunc) Handle(w http.ResponseWriter, r *http.Request) {
	f(w, r)
}

// ConfigError is a controller wiring fault: a request named an action no
// handler was registered for. It surfaces as a 500; it is a programmer
// error, never retried.
type ConfigError struct {
	Action string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no handler registered for action %q", e.Action)
}
