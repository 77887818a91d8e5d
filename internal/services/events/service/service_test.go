package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"doomscroll/internal/core/classify"
	"doomscroll/internal/modkit/repokit"
	perr "doomscroll/internal/platform/errors"
	ptime "doomscroll/internal/platform/time"
	"doomscroll/internal/services/events/domain"
	"doomscroll/internal/services/events/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

type recMirror struct {
	got []domain.UsageEvent
	err error
}

func (m *recMirror) Copy(_ context.Context, es []domain.UsageEvent) error {
	m.got = append(m.got, es...)
	return m.err
}

func newSvc() (*Service, *repo.Memory) {
	mem := repo.NewMemory()
	return New(repokit.InlineTx{}, mem, nil, ptime.NewFake(t0)), mem
}

func TestIngest_ClassifiesContentAnalysisWithText(t *testing.T) {
	s, mem := newSvc()

	res, err := s.Ingest(context.Background(), domain.IngestBatch{Events: []domain.IngestEvent{{
		UserID:      "u1",
		EventType:   domain.EventContentAnalysis,
		Domain:      "news.example",
		VisibleText: "Breaking news: this is terrible",
	}}})
	require.NoError(t, err)
	require.Equal(t, 1, res.ProcessedCount)

	all := mem.All()
	require.Len(t, all, 1)
	e := all[0]
	_, err = uuid.Parse(e.ID)
	require.NoError(t, err)
	require.True(t, e.Timestamp.Equal(t0))

	var got classify.Result
	require.NoError(t, json.Unmarshal(e.Classification, &got))
	require.Equal(t, classify.Negative, got.Sentiment)
	require.Equal(t, "news", got.ContentType)
	require.Equal(t, got.DoomScore, got.ScrollScore)
	require.Equal(t, classify.DefaultModelVersion, got.ModelVersion)
}

func TestIngest_LeavesOtherEventsUnclassified(t *testing.T) {
	s, mem := newSvc()
	ts := t0.Add(-time.Hour)
	dur := 42
	given := json.RawMessage(`{"sentiment":"positive"}`)

	_, err := s.Ingest(context.Background(), domain.IngestBatch{Events: []domain.IngestEvent{
		{ID: "7f1d1d5e-4a0b-4c57-9b43-0b8f3c1f7a10", UserID: "u1", EventType: domain.EventFocusAlert, Domain: "x.com", VisibleText: "ignored", Timestamp: &ts, Duration: &dur},
		{UserID: "u1", EventType: domain.EventContentAnalysis, Domain: "x.com"},
		{UserID: "u1", EventType: domain.EventContentAnalysis, Domain: "x.com", VisibleText: "sad news", Classification: given},
	}})
	require.NoError(t, err)

	all := mem.All()
	require.Len(t, all, 3)
	require.Equal(t, "7f1d1d5e-4a0b-4c57-9b43-0b8f3c1f7a10", all[0].ID)
	require.True(t, all[0].Timestamp.Equal(ts))
	require.Equal(t, 42, all[0].DurationSeconds())
	require.Empty(t, all[0].Classification)
	require.Empty(t, all[1].Classification)
	require.JSONEq(t, string(given), string(all[2].Classification))
}

func TestIngest_HintFillsContentTypeWithoutMatch(t *testing.T) {
	s, mem := newSvc()
	_, err := s.Ingest(context.Background(), domain.IngestBatch{Events: []domain.IngestEvent{{
		UserID:         "u2",
		EventType:      domain.EventContentAnalysis,
		Domain:         "v.example",
		VisibleText:    "zzz qqq",
		StructuredData: map[string]any{"content_type": "reel"},
	}}})
	require.NoError(t, err)

	var got classify.Result
	require.NoError(t, json.Unmarshal(mem.All()[0].Classification, &got))
	require.Equal(t, "reel", got.ContentType)
}

func TestIngest_EmptyBatch(t *testing.T) {
	s, _ := newSvc()
	_, err := s.Ingest(context.Background(), domain.IngestBatch{})
	require.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestIngest_StoreFailureSkipsMirror(t *testing.T) {
	s, mem := newSvc()
	mir := &recMirror{}
	s.Mirror = mir
	mem.Err = errors.New("disk full")

	_, err := s.Ingest(context.Background(), domain.IngestBatch{Events: []domain.IngestEvent{{UserID: "u", EventType: "page_view", Domain: "d"}}})
	require.Error(t, err)
	require.Empty(t, mir.got)
}

func TestIngest_MirrorFailureIsNotFatal(t *testing.T) {
	s, mem := newSvc()
	mir := &recMirror{err: errors.New("clickhouse down")}
	s.Mirror = mir

	res, err := s.Ingest(context.Background(), domain.IngestBatch{Events: []domain.IngestEvent{
		{UserID: "u", EventType: "page_view", Domain: "d"},
		{UserID: "u", EventType: "page_view", Domain: "e"},
	}})
	require.NoError(t, err)
	require.Equal(t, 2, res.ProcessedCount)
	require.Len(t, mir.got, 2)
	require.Len(t, mem.All(), 2)
}

func TestQueryByTypeSince(t *testing.T) {
	s, _ := newSvc()
	ctx := context.Background()
	for i, typ := range []string{domain.EventContentAnalysis, "page_view", domain.EventContentAnalysis} {
		require.NoError(t, s.Insert(ctx, domain.UsageEvent{
			ID: uuid.NewString(), UserID: "u", EventType: typ, Domain: "d",
			Timestamp: t0.Add(time.Duration(-i) * 24 * time.Hour),
		}))
	}

	got, err := s.QueryByTypeSince(ctx, domain.EventContentAnalysis, t0.Add(-48*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].Timestamp.Before(got[1].Timestamp))

	got, err = s.QueryByTypeSince(ctx, domain.EventContentAnalysis, t0)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
