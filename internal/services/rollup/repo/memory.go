package repo

import (
	"context"
	"slices"
	"strings"
	"sync"

	"doomscroll/internal/platform/store"
	"doomscroll/internal/services/rollup/domain"
)

// Memory is an in-process domain.BucketStore
type Memory struct {
	mu   sync.Mutex
	rows map[domain.BucketKey]domain.DailyBucket

	// Err, when set, fails every write before anything is applied
	Err error
	// Writes counts successful UpsertAll and Upsert calls
	Writes int
}

// NewMemory returns an empty store
func NewMemory() *Memory { return &Memory{rows: map[domain.BucketKey]domain.DailyBucket{}} }

// Upsert overwrites one row
func (m *Memory) Upsert(ctx context.Context, b domain.DailyBucket) error {
	return m.UpsertAll(ctx, []domain.DailyBucket{b})
}

// UpsertAll overwrites every row or none
func (m *Memory) UpsertAll(_ context.Context, bs []domain.DailyBucket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, b := range bs {
		m.rows[b.Key()] = b
	}
	m.Writes++
	return nil
}

// Get returns one row or store.ErrNoRows
func (m *Memory) Get(_ context.Context, k domain.BucketKey) (domain.DailyBucket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[k]
	if !ok {
		return domain.DailyBucket{}, store.ErrNoRows
	}
	return b, nil
}

// All returns every row ordered by user then date
func (m *Memory) All() []domain.DailyBucket {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.DailyBucket, 0, len(m.rows))
	for _, b := range m.rows {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b domain.DailyBucket) int {
		if c := strings.Compare(a.UserID, b.UserID); c != 0 {
			return c
		}
		return strings.Compare(a.Date, b.Date)
	})
	return out
}
