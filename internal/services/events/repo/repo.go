// Package repo provides the usage event log on Postgres, a ClickHouse mirror
// and an in-memory log for tests
package repo

import (
	"context"
	"time"

	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/store"
	"doomscroll/internal/services/events/domain"
)

// Storage is the event log a service binds per call
type Storage interface {
	Insert(ctx context.Context, e domain.UsageEvent) error
	QueryByTypeSince(ctx context.Context, eventType string, since time.Time) ([]domain.UsageEvent, error)
}

type binder struct{}

// NewPG constructs a Postgres binder
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

// ids are client supplied and may repeat on retries; a replay is a no-op
const insertEvent = `
	INSERT INTO usage_events
		(id, user_id, event_type, ts, domain, url, duration_seconds, extension_version, browser, classification)
	VALUES
		($1::uuid, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, ''), $10::jsonb)
	ON CONFLICT (id) DO NOTHING`

func (s *pg) Insert(ctx context.Context, e domain.UsageEvent) error {
	var class any
	if len(e.Classification) > 0 {
		class = string(e.Classification)
	}
	_, err := s.q.Exec(ctx, insertEvent,
		e.ID, e.UserID, e.EventType, e.Timestamp.UTC(), e.Domain,
		e.URL, e.Duration, e.ExtensionVersion, e.Browser, class,
	)
	return err
}

const selectByTypeSince = `
	SELECT
		id::text,
		user_id,
		event_type,
		ts,
		domain,
		COALESCE(url, ''),
		duration_seconds,
		COALESCE(extension_version, ''),
		COALESCE(browser, ''),
		classification::text
	FROM usage_events
	WHERE event_type = $1 AND ts >= $2
	ORDER BY ts, id`

func (s *pg) QueryByTypeSince(ctx context.Context, eventType string, since time.Time) ([]domain.UsageEvent, error) {
	return store.Many(ctx, s.q, scanEvent, selectByTypeSince, eventType, since.UTC())
}

func scanEvent(r store.Row) (domain.UsageEvent, error) {
	var (
		e     domain.UsageEvent
		class *string
	)
	err := r.Scan(&e.ID, &e.UserID, &e.EventType, &e.Timestamp, &e.Domain,
		&e.URL, &e.Duration, &e.ExtensionVersion, &e.Browser, &class)
	if err != nil {
		return e, err
	}
	if class != nil {
		e.Classification = []byte(*class)
	}
	return e, nil
}
