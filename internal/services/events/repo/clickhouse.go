package repo

import (
	"context"

	"doomscroll/internal/platform/store"
	"doomscroll/internal/services/events/domain"
)

// MirrorTable is the ClickHouse table events are copied to. Expected columns,
// in order: id UUID, user_id String, event_type LowCardinality(String),
// ts DateTime64(3, 'UTC'), domain String, url String,
// duration_seconds Nullable(Int32), extension_version String, browser String,
// classification String.
const MirrorTable = "usage_events"

// Mirror copies stored events into ClickHouse for analytics reads
type Mirror struct {
	CH    store.Clickhouse
	Table string
}

// NewMirror returns nil when ch is nil so callers can skip mirroring with one check
func NewMirror(ch store.Clickhouse) *Mirror {
	if ch == nil {
		return nil
	}
	return &Mirror{CH: ch, Table: MirrorTable}
}

// Copy inserts es as one native batch
func (m *Mirror) Copy(ctx context.Context, es []domain.UsageEvent) error {
	if m == nil || len(es) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(es))
	for _, e := range es {
		var dur *int32
		if e.Duration != nil {
			d := int32(*e.Duration)
			dur = &d
		}
		rows = append(rows, []any{
			e.ID, e.UserID, e.EventType, e.Timestamp.UTC(), e.Domain,
			e.URL, dur, e.ExtensionVersion, e.Browser, string(e.Classification),
		})
	}
	return m.CH.Insert(ctx, m.Table, rows)
}
