// Package domain defines daily buckets, run reports and the rollup ports
package domain

import (
	"time"

	perr "doomscroll/internal/platform/errors"
)

// DailyBucket is the materialized time split for one user on one calendar date.
// Rows are overwritten whole by each run and never accumulated.
type DailyBucket struct {
	UserID          string `json:"user_id"`
	Date            string `json:"date"` // 2006-01-02 in the rollup location
	DoomSeconds     int64  `json:"doom_seconds"`
	NeutralSeconds  int64  `json:"neutral_seconds"`
	PositiveSeconds int64  `json:"positive_seconds"`
}

// BucketKey identifies a bucket
type BucketKey struct {
	UserID string
	Date   string
}

// Key returns the bucket's identity
func (b DailyBucket) Key() BucketKey { return BucketKey{UserID: b.UserID, Date: b.Date} }

// Total is the sum of the three counters
func (b DailyBucket) Total() int64 { return b.DoomSeconds + b.NeutralSeconds + b.PositiveSeconds }

// RunReport summarizes one RunOnce
type RunReport struct {
	StartedAt        time.Time     `json:"started_at"`
	Since            time.Time     `json:"since"`
	Scanned          int           `json:"scanned"`
	SkippedMalformed int           `json:"skipped_malformed"`
	DroppedSentiment int           `json:"dropped_sentiment"`
	BucketsWritten   int           `json:"buckets_written"`
	LeaseHeld        bool          `json:"lease_held,omitempty"`
	Duration         time.Duration `json:"duration_ns" swaggertype:"integer"`
}

// Status is the engine state the meta endpoint reports
type Status struct {
	Running     bool       `json:"running"`
	Runs        int        `json:"runs"`
	LastRun     *RunReport `json:"last_run,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	LastErrorAt *time.Time `json:"last_error_at,omitempty"`
}

var (
	// ErrMalformedPayload marks an event whose classification is absent or unreadable
	ErrMalformedPayload = perr.New(perr.ErrorCodeJSON, "rollup: malformed classification payload")

	// ErrRunInProgress is returned by RunOnce while another run holds the engine
	ErrRunInProgress = perr.New(perr.ErrorCodeConflict, "rollup: run already in progress")

	// ErrSchedulerStarted is returned by a second Scheduler.Start
	ErrSchedulerStarted = perr.New(perr.ErrorCodeConflict, "rollup: scheduler already started")
)
