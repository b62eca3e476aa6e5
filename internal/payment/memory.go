package payment

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryProcessor is the development stand-in for the real processor.  It
// keeps intents in a mutex-guarded map and, like the original dev mock,
// reports every freshly created intent as already succeeded so the
// confirmation flow can be exercised without a card.
type MemoryProcessor struct {
	mu      sync.Mutex
	intents map[string]*Intent
}

// NewMemoryProcessor returns an empty in-memory processor.
func NewMemoryProcessor() *MemoryProcessor {
	return &MemoryProcessor{intents: make(map[string]*Intent)}
}

// CreateIntent records a new intent with a mock id and client secret.
func (m *MemoryProcessor) CreateIntent(_ context.Context, p CreateParams) (*Intent, error) {
	id := "pi_mock_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	in := &Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString()[:8],
		Amount:       p.Amount,
		Currency:     p.Currency,
		Status:       StatusSucceeded,
		Metadata:     cloneMeta(p.Metadata),
	}

	m.mu.Lock()
	m.intents[id] = in
	m.mu.Unlock()
	return copyIntent(in), nil
}

// RetrieveIntent returns the stored intent or ErrIntentNotFound.
func (m *MemoryProcessor) RetrieveIntent(_ context.Context, id string) (*Intent, error) {
	m.mu.Lock()
	in, ok := m.intents[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrIntentNotFound
	}
	return copyIntent(in), nil
}

// SetStatus overrides the status of a stored intent.  Tests use it to
// simulate payments that are still pending or have failed.
func (m *MemoryProcessor) SetStatus(id, status string) {
	m.mu.Lock()
	if in, ok := m.intents[id]; ok {
		in.Status = status
	}
	m.mu.Unlock()
}

func cloneMeta(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

func copyIntent(in *Intent) *Intent {
	cp := *in
	cp.Metadata = cloneMeta(in.Metadata)
	return &cp
}
