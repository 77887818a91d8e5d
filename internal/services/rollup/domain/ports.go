package domain

import "context"

// BucketStore persists buckets. Upsert overwrites one row; UpsertAll
// overwrites every row or none.
type BucketStore interface {
	Upsert(ctx context.Context, b DailyBucket) error
	UpsertAll(ctx context.Context, bs []DailyBucket) error
}

// RunnerPort is what the scheduler, the CLI and the meta endpoint drive
type RunnerPort interface {
	RunOnce(ctx context.Context) (RunReport, error)
	Status() Status
}
