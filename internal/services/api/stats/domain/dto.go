// Package domain holds DTOs for stats http and service contracts
package domain

// Query inputs bind from the query string. Days counts whole calendar days
// ending today, so days=1 is today only.

// SentimentInput selects the window for sentiment totals
type SentimentInput struct {
	Days   int    `query:"days" default:"7" validate:"min=1,max=366" example:"7"`
	UserID string `query:"user_id" validate:"omitempty,max=128" example:"9f86d081884c7d65"`
}

// SentimentTotals is the summed split from daily buckets
type SentimentTotals struct {
	Days            int    `json:"days" example:"7"`
	Since           string `json:"since" example:"2026-03-04"`
	UserID          string `json:"user_id,omitempty"`
	DoomSeconds     int64  `json:"doom_seconds" example:"1830"`
	NeutralSeconds  int64  `json:"neutral_seconds" example:"600"`
	PositiveSeconds int64  `json:"positive_seconds" example:"240"`
	TotalSeconds    int64  `json:"total_seconds" example:"2670"`
}

// OverviewInput selects the window and the top domain count
type OverviewInput struct {
	Days  int `query:"days" default:"7" validate:"min=1,max=366" example:"7"`
	Limit int `query:"limit" default:"10" validate:"min=1,max=100" example:"10"`
}

// OverallStats are the headline numbers of the overview
type OverallStats struct {
	ActiveUsers          int64   `json:"active_users" example:"12"`
	TotalEvents          int64   `json:"total_events" example:"5400"`
	TotalDurationSeconds int64   `json:"total_duration_seconds" example:"86400"`
	TotalDurationMinutes float64 `json:"total_duration_minutes" example:"1440"`
	AvgDurationMinutes   float64 `json:"avg_duration_minutes" example:"0.3"`
}

// DomainRow is one entry of the top domains list
type DomainRow struct {
	Domain             string  `json:"domain" example:"news.example.com"`
	Visits             int64   `json:"visits" example:"320"`
	AvgDurationMinutes float64 `json:"avg_duration" example:"1.5"`
}

// TrendRow is one UTC day of activity
type TrendRow struct {
	Date        string `json:"date" example:"2026-03-09"`
	ActiveUsers int64  `json:"active_users" example:"9"`
	TotalEvents int64  `json:"total_events" example:"780"`
}

// Overview is the raw-event analytics summary
type Overview struct {
	PeriodDays   int              `json:"period_days" example:"7"`
	Source       string           `json:"source" example:"postgres"`
	OverallStats OverallStats     `json:"overall_stats"`
	EventsByType map[string]int64 `json:"events_by_type"`
	TopDomains   []DomainRow      `json:"top_domains"`
	DailyTrends  []TrendRow       `json:"daily_trends"`
}

// UserStatsInput selects the window for one user's stats
type UserStatsInput struct {
	Days int `query:"days" default:"7" validate:"min=1,max=366" example:"7"`
}

// UserStats summarizes one user's raw events
type UserStats struct {
	UserID              string  `json:"user_id"`
	PeriodDays          int     `json:"period_days" example:"7"`
	TotalEvents         int64   `json:"total_events" example:"140"`
	TotalTimeSeconds    int64   `json:"total_time_seconds" example:"5400"`
	TotalTimeMinutes    float64 `json:"total_time_minutes" example:"90"`
	FocusAlerts         int64   `json:"focus_alerts" example:"3"`
	DailyAverageMinutes float64 `json:"daily_average_minutes" example:"12.9"`
}

// DailySentimentRow is one bucket as the API shows it
type DailySentimentRow struct {
	Date            string `json:"date" example:"2026-03-09"`
	DoomSeconds     int64  `json:"doom_seconds" example:"300"`
	NeutralSeconds  int64  `json:"neutral_seconds" example:"90"`
	PositiveSeconds int64  `json:"positive_seconds" example:"30"`
}
