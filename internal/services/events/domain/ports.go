package domain

import (
	"context"
	"time"
)

// WriterPort appends events
type WriterPort interface {
	Insert(ctx context.Context, e UsageEvent) error
	InsertBatch(ctx context.Context, es []UsageEvent) error
}

// ReaderPort is what the rollup scans
type ReaderPort interface {
	// QueryByTypeSince returns events of eventType with timestamp >= since, oldest first
	QueryByTypeSince(ctx context.Context, eventType string, since time.Time) ([]UsageEvent, error)
}

// ServicePort is consumed by the ingest handler
type ServicePort interface {
	Ingest(ctx context.Context, in IngestBatch) (IngestResult, error)
}

// Ports is the set the events module publishes
type Ports struct {
	Writer  WriterPort
	Reader  ReaderPort
	Service ServicePort
}
