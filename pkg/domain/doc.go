// Package domain holds the core data model of the appeal wizard: the
// session-scoped ApplicationData record, the Appeal submission it carries,
// and the navigation permission ledger used to enforce step ordering.
//
// Nothing in this package performs I/O. Stores, controllers and processors
// all depend on it; it depends on nothing.
package domain
