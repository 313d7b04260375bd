package wizard

import (
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/session"
)

// GuardedController adds the forward-only access-control ledger on top of
// Controller. It is the only integrity control in the wizard: a user who
// bookmarks or guesses a mid-wizard URL is sent back to where they actually
// are, never silently forward.
type GuardedController[F any] struct {
	Controller[F]

	// EntryPath is the wizard's fixed entry step. A session with no ledger
	// is always redirected here, and the entry page itself is always
	// reachable (otherwise the redirect would loop).
	EntryPath string
}

// Guard wraps a controller with the permission gate. The permission-granting
// processor is appended after all caller-supplied processors, so by the time
// it runs every step-specific side effect has already succeeded.
func Guard[F any](c Controller[F], entryPath string) *GuardedController[F] {
	c.Processors = append(c.Processors, PermitNextStep())
	return &GuardedController[F]{Controller: c, EntryPath: entryPath}
}

// Get checks the permission ledger before delegating to the base handler.
func (g *GuardedController[F]) Get(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == g.EntryPath {
		g.Controller.Get(w, r)
		return
	}

	sess, ok := session.FromRequest(r)
	if !ok || len(sess.App.Navigation.Permissions) == 0 {
		// First-ever visit in this session: back to the start.
		http.Redirect(w, r, g.EntryPath, http.StatusFound)
		return
	}

	if !sess.App.Navigation.Permitted(path) {
		// Out-of-order or deep-linked: back to the last page the user
		// legitimately reached.
		http.Redirect(w, r, sess.App.Navigation.Last(), http.StatusFound)
		return
	}

	g.Controller.Get(w, r)
}

// Post attaches the step's navigator to the request before delegating, so
// the injected permission processor can read the redirect target without a
// separate parameter-passing channel.
func (g *GuardedController[F]) Post(w http.ResponseWriter, r *http.Request) {
	g.Controller.Post(w, AttachNavigator(r, g.navigator()))
}
