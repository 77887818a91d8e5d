// Package service implements event ingest and the event log ports
package service

import (
	"context"
	"encoding/json"
	"time"

	"doomscroll/internal/core/classify"
	"doomscroll/internal/modkit/repokit"
	perr "doomscroll/internal/platform/errors"
	"doomscroll/internal/platform/logger"
	ptime "doomscroll/internal/platform/time"
	"doomscroll/internal/services/events/domain"
	"doomscroll/internal/services/events/repo"

	"github.com/google/uuid"
)

// Mirror receives every committed batch; failures are logged, never returned
type Mirror interface {
	Copy(ctx context.Context, es []domain.UsageEvent) error
}

// Service implements domain.WriterPort, domain.ReaderPort and domain.ServicePort
type Service struct {
	DB         repokit.TxRunner
	Binder     repokit.Binder[repo.Storage]
	Classifier classify.Classifier
	Clock      ptime.Clock
	Mirror     Mirror
	Log        logger.Logger
}

// New constructs the service; a nil classifier means the embedded ruleset
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], c classify.Classifier, clock ptime.Clock) *Service {
	if c == nil {
		c = classify.New(nil)
	}
	if clock == nil {
		clock = ptime.System{}
	}
	return &Service{DB: db, Binder: b, Classifier: c, Clock: clock, Log: *logger.Named("events")}
}

// Ingest stores the batch in one transaction
func (s *Service) Ingest(ctx context.Context, in domain.IngestBatch) (domain.IngestResult, error) {
	if len(in.Events) == 0 {
		return domain.IngestResult{}, perr.WithField(perr.InvalidArgf("events must not be empty"), "events")
	}
	now := s.Clock.Now()
	es := make([]domain.UsageEvent, 0, len(in.Events))
	for _, ie := range in.Events {
		e, err := s.prepare(ie, now)
		if err != nil {
			return domain.IngestResult{}, err
		}
		es = append(es, e)
	}
	if err := s.InsertBatch(ctx, es); err != nil {
		return domain.IngestResult{}, err
	}
	return domain.IngestResult{ProcessedCount: len(es)}, nil
}

func (s *Service) prepare(in domain.IngestEvent, now time.Time) (domain.UsageEvent, error) {
	e := domain.UsageEvent{
		ID:               in.ID,
		UserID:           in.UserID,
		EventType:        in.EventType,
		Timestamp:        now,
		Domain:           in.Domain,
		URL:              in.URL,
		Duration:         in.Duration,
		ExtensionVersion: in.ExtensionVersion,
		Browser:          in.Browser,
		Classification:   in.Classification,
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		e.Timestamp = *in.Timestamp
	}
	if e.EventType == domain.EventContentAnalysis && in.VisibleText != "" && len(e.Classification) == 0 {
		res := s.Classifier.Classify(in.VisibleText, classify.Hints(in.StructuredData))
		b, err := json.Marshal(res)
		if err != nil {
			return e, perr.Wrap(err, perr.ErrorCodeUnknown, "encode classification")
		}
		e.Classification = b
	}
	return e, nil
}

// Insert stores a single event
func (s *Service) Insert(ctx context.Context, e domain.UsageEvent) error {
	return s.InsertBatch(ctx, []domain.UsageEvent{e})
}

// InsertBatch stores es atomically, then mirrors them best-effort
func (s *Service) InsertBatch(ctx context.Context, es []domain.UsageEvent) error {
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		for _, e := range es {
			if err := st.Insert(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return perr.FromPostgres(err, "insert usage events")
	}
	if s.Mirror != nil {
		if err := s.Mirror.Copy(ctx, es); err != nil {
			s.Log.Warn().Err(err).Int("events", len(es)).Msg("clickhouse mirror failed")
		}
	}
	return nil
}

// QueryByTypeSince reads from the pool outside any transaction
func (s *Service) QueryByTypeSince(ctx context.Context, eventType string, since time.Time) ([]domain.UsageEvent, error) {
	es, err := s.Binder.Bind(s.DB).QueryByTypeSince(ctx, eventType, since)
	if err != nil {
		return nil, perr.FromPostgres(err, "query usage events")
	}
	return es, nil
}
