// Package store holds the process-wide in-memory state: the static
// equipment catalog and user set, the append-only booking ledger with its
// admin notifications, and the session table.  A single Store is
// constructed at startup and injected into every handler; there are no
// package-level singletons.
package store

import "errors"

// ErrNotFound is returned when a lookup misses, e.g. an unknown equipment
// id. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateIntent is returned when a booking for the same payment
// intent id already exists in the ledger. Confirming a payment intent is
// idempotent-by-rejection: the second attempt fails instead of creating a
// duplicate booking. Handlers should translate this into an HTTP 409
// response.
var ErrDuplicateIntent = errors.New("payment intent already confirmed")
