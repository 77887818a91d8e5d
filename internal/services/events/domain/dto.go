package domain

import (
	"encoding/json"
	"time"
)

// IngestEvent is one event as the browser extension posts it.
// VisibleText and StructuredData feed the classifier and are not stored.
type IngestEvent struct {
	ID               string          `json:"id,omitempty" validate:"omitempty,uuid"`
	UserID           string          `json:"user_id" validate:"required,max=128"`
	EventType        string          `json:"event_type" validate:"required,max=64"`
	Timestamp        *time.Time      `json:"timestamp,omitempty"`
	Domain           string          `json:"domain" validate:"required,max=255"`
	URL              string          `json:"url,omitempty" validate:"omitempty,max=2048"`
	Duration         *int            `json:"duration,omitempty" validate:"omitempty,min=0"`
	ExtensionVersion string          `json:"extension_version,omitempty" validate:"omitempty,max=32"`
	Browser          string          `json:"browser,omitempty" validate:"omitempty,max=64"`
	VisibleText      string          `json:"visible_text,omitempty"`
	StructuredData   map[string]any  `json:"structured_data,omitempty"`
	Classification   json.RawMessage `json:"classification,omitempty" swaggertype:"object"`
}

// IngestBatch is the POST /events body
type IngestBatch struct {
	Events []IngestEvent `json:"events" validate:"required,min=1,max=500,dive"`
}

// IngestResult reports how many events were stored
type IngestResult struct {
	ProcessedCount int `json:"processed_count"`
}
