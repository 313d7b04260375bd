// Package session carries one browser session through a request: the
// Session type (cookie value + ApplicationData), the Manager that serializes
// store access per cookie, and the Bridge that persists data and refreshes
// the response cookie after each successful wizard step.
package session
