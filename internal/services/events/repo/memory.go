package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/services/events/domain"
)

// Memory is an in-process event log. It binds to any Queryer by ignoring it.
type Memory struct {
	mu     sync.Mutex
	events []domain.UsageEvent
	seen   map[string]struct{}

	// Err, when set, fails every call
	Err error
}

// NewMemory returns an empty log
func NewMemory() *Memory { return &Memory{seen: map[string]struct{}{}} }

// Bind implements repokit.Binder
func (m *Memory) Bind(repokit.Queryer) Storage { return m }

// Insert appends e unless its id was already stored
func (m *Memory) Insert(_ context.Context, e domain.UsageEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, dup := m.seen[e.ID]; dup {
		return nil
	}
	m.seen[e.ID] = struct{}{}
	m.events = append(m.events, e)
	return nil
}

// QueryByTypeSince filters and sorts oldest first
func (m *Memory) QueryByTypeSince(_ context.Context, eventType string, since time.Time) ([]domain.UsageEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.UsageEvent
	for _, e := range m.events {
		if e.EventType == eventType && !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.UsageEvent) int { return a.Timestamp.Compare(b.Timestamp) })
	return out, nil
}

// All returns a copy of every stored event in insertion order
func (m *Memory) All() []domain.UsageEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.events)
}
