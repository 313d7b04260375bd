// Package wizard is the session-scoped wizard-flow engine: the generic
// step controller (validate, sanitize, process, persist, redirect), the
// guarded variant enforcing step order through the session's permission
// ledger, the navigation contract with change-mode interception, and the
// pluggable action-processor and action-handler units wizard steps compose.
//
// Steps are thin instantiations of Controller or GuardedController; the
// concrete appeal journey under internal/journey shows the intended shape.
package wizard
