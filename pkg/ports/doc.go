// Package ports defines the collaborator interfaces the wizard engine
// consumes: session persistence, distributed locking, template rendering and
// the outbound service clients (company lookup, email, file transfer).
//
// Adapters live under pkg/adapters and internal/clients; the engine core
// only ever sees these interfaces.
package ports
