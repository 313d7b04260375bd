package wizard

import (
	"context"
	"errors"
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/session"
)

// Processor is a pluggable unit of side-effecting work run during POST
// handling: look up a company name, send an email, mutate session state.
// Processors run in declared order, strictly sequentially; a later
// processor may rely on state an earlier one wrote.
type Processor interface {
	Process(ctx context.Context, r *http.Request) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, r *http.Request) error

func (f ProcessorFunc) Process(ctx context.Context, r *http.Request) error {
	return f(ctx, r)
}

type navigatorKey struct{}

// AttachNavigator returns a shallow copy of r carrying the step's navigator
// in its context. Guarded controllers attach it before POST so the
// permission processor can read the step's "next" URI without a separate
// parameter channel.
func AttachNavigator(r *http.Request, nav Navigator) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), navigatorKey{}, nav))
}

// NavigatorFromRequest extracts a previously attached navigator.
func NavigatorFromRequest(r *http.Request) (Navigator, bool) {
	nav, ok := r.Context().Value(navigatorKey{}).(Navigator)
	return nav, ok
}

// errNoNavigator indicates the permission processor ran on a request the
// guarded controller did not prepare. Programmer error.
var errNoNavigator = errors.New("no navigator attached to request")

// PermitNextStep returns the processor guarded controllers append after all
// caller-supplied processors: it grants the session permission to visit the
// step the user is about to be redirected to. Granting is append-once; a
// URI already in the ledger is never re-added.
func PermitNextStep() Processor {
	return ProcessorFunc(func(ctx context.Context, r *http.Request) error {
		sess, ok := session.FromRequest(r)
		if !ok {
			// No session means no ledger to maintain; the session
			// middleware malfunctioned and persistence will fail anyway.
			return nil
		}
		nav, ok := NavigatorFromRequest(r)
		if !ok {
			return errNoNavigator
		}
		sess.App.Navigation.Permit(nav.Next(r))
		return nil
	})
}
