package domain

import "context"

// ServicePort is consumed by handlers and other modules. Every method is read only.
type ServicePort interface {
	SumSentimentSeconds(ctx context.Context, in SentimentInput) (SentimentTotals, error)
	Overview(ctx context.Context, in OverviewInput) (Overview, error)
	UserStats(ctx context.Context, userID string, in UserStatsInput) (UserStats, error)
	DailySentiment(ctx context.Context, userID string, in UserStatsInput) ([]DailySentimentRow, error)
}
