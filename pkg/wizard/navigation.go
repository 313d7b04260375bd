package wizard

import "net/http"

// ChangeModeParam is the query flag that switches a step into change mode:
// "edit this answer from the summary page, then return to the summary".
const ChangeModeParam = "cm"

// IsChangeMode reports whether the request carries the change-mode flag.
func IsChangeMode(r *http.Request) bool {
	return r.URL.Query().Get(ChangeModeParam) == "1"
}

// Link is a rendered navigation link.
type Link struct {
	Href string `json:"href"`
}

// Navigator is the per-step navigation contract: pure functions of the
// request (and whatever session state is reachable from it).
type Navigator interface {
	Previous(r *http.Request) string
	Next(r *http.Request) string
	SignOut(r *http.Request) string

	// Actions returns optional per-step action links, keyed by action name.
	Actions(changeMode bool) map[string]Link
}

// Navigation is the value implementation of Navigator used by step wiring.
// Nil funcs yield empty URIs, which the renderer treats as "no link".
type Navigation struct {
	PreviousFunc func(r *http.Request) string
	NextFunc     func(r *http.Request) string
	SignOutFunc  func(r *http.Request) string
	ActionsFunc  func(changeMode bool) map[string]Link
}

func (n Navigation) Previous(r *http.Request) string {
	if n.PreviousFunc == nil {
		return ""
	}
	return n.PreviousFunc(r)
}

func (n Navigation) Next(r *http.Request) string {
	if n.NextFunc == nil {
		return ""
	}
	return n.NextFunc(r)
}

func (n Navigation) SignOut(r *http.Request) string {
	if n.SignOutFunc == nil {
		return ""
	}
	return n.SignOutFunc(r)
}

func (n Navigation) Actions(changeMode bool) map[string]Link {
	if n.ActionsFunc == nil {
		return map[string]Link{}
	}
	return n.ActionsFunc(changeMode)
}

// Static builds a Navigation whose previous/next/sign-out URIs are fixed.
// Most wizard steps need nothing more.
func Static(previous, next, signOut string) Navigation {
	return Navigation{
		PreviousFunc: func(*http.Request) string { return previous },
		NextFunc:     func(*http.Request) string { return next },
		SignOutFunc:  func(*http.Request) string { return signOut },
	}
}

// ChangeModeAction computes the target URI when change mode intercepts a
// navigation method. The method name ("previous", "next" or "signOut") is
// passed so a single action can serve all three.
type ChangeModeAction func(r *http.Request, method string) string

// FixedChangeModeAction always returns the given URI, typically the
// check-your-answers page.
func FixedChangeModeAction(uri string) ChangeModeAction {
	return func(*http.Request, string) string { return uri }
}

// changeModeNavigator wraps a Navigator and, when the request carries the
// change-mode flag, answers previous/next/sign-out with the configured
// action instead of the step's own logic. This replaces the reflective
// proxy trick with an explicit wrapper dispatching per method.
type changeModeNavigator struct {
	inner  Navigator
	action ChangeModeAction
}

// WithChangeMode wraps nav with change-mode interception. A nil action
// returns nav unchanged.
func WithChangeMode(nav Navigator, action ChangeModeAction) Navigator {
	if action == nil {
		return nav
	}
	return changeModeNavigator{inner: nav, action: action}
}

func (n changeModeNavigator) Previous(r *http.Request) string {
	if IsChangeMode(r) {
		return n.action(r, "previous")
	}
	return n.inner.Previous(r)
}

func (n changeModeNavigator) Next(r *http.Request) string {
	if IsChangeMode(r) {
		return n.action(r, "next")
	}
	return n.inner.Next(r)
}

func (n changeModeNavigator) SignOut(r *http.Request) string {
	if IsChangeMode(r) {
		return n.action(r, "signOut")
	}
	return n.inner.SignOut(r)
}

func (n changeModeNavigator) Actions(changeMode bool) map[string]Link {
	return n.inner.Actions(changeMode)
}
