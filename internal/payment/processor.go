// Package payment abstracts the external payment processor behind a small
// capability interface with two implementations: a real Stripe adapter and
// an in-memory fake for development and tests.  The implementation is
// chosen once at construction time from configuration; it is never swapped
// at runtime.
package payment

import (
	"context"
	"errors"
	"fmt"
)

// Intent statuses this system cares about.  The processor may report
// others (processing, canceled, ...); only "succeeded" allows a booking
// to be confirmed.
const (
	StatusSucceeded = "succeeded"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Intent mirrors the processor-side payment intent record.  It is created
// and owned by the processor; this system only reads it back.  Amount is
// in minor currency units.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
	Metadata     map[string]string
}

// CreateParams carries everything needed to open a payment intent.
// Metadata must include the booking context (user id, equipment id,
// date range) so the confirmation step can verify ownership later.
type CreateParams struct {
	Amount      int64  // minor currency units
	Currency    string // lowercase ISO code, e.g. "usd"
	CustomerRef string // optional processor-side customer id
	Description string
	Metadata    map[string]string
}

// Processor is the capability interface to the external payment service.
// Both calls are blocking network I/O on the real implementation: they
// honor context cancellation and must never be made while holding a store
// lock.
type Processor interface {
	CreateIntent(ctx context.Context, p CreateParams) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}

// ErrIntentNotFound is returned when the processor has no intent with the
// requested id. Handlers should translate this into an HTTP 404 response.
var ErrIntentNotFound = errors.New("payment intent not found")

// ProcessorError wraps an error reported by the external processor.  The
// message is safe to surface to clients; it never contains key material.
type ProcessorError struct {
	Code    string // processor-specific error code, may be empty
	Message string
}

func (e *ProcessorError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment processor: %s (%s)", e.Message, e.Code)
	}
	return "payment processor: " + e.Message
}
