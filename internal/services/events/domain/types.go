// Package domain holds the usage event types and the ports other modules consume
package domain

import (
	"encoding/json"
	"time"
)

// Event types the rollup and stats read
const (
	EventContentAnalysis = "content_analysis"
	EventFocusAlert      = "focus_alert"
)

// UsageEvent is one immutable telemetry record
type UsageEvent struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	EventType        string          `json:"event_type"`
	Timestamp        time.Time       `json:"timestamp"`
	Domain           string          `json:"domain"`
	URL              string          `json:"url,omitempty"`
	Duration         *int            `json:"duration,omitempty"`
	ExtensionVersion string          `json:"extension_version,omitempty"`
	Browser          string          `json:"browser,omitempty"`
	Classification   json.RawMessage `json:"classification,omitempty" swaggertype:"object"`
}

// DurationSeconds is Duration or 0
func (e UsageEvent) DurationSeconds() int {
	if e.Duration == nil {
		return 0
	}
	return *e.Duration
}
