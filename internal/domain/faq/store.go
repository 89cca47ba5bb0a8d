package faq

import "context"

// DefaultTrendingLimit caps TopQueries when the caller passes a non-positive limit.
const DefaultTrendingLimit = 10

// Store defines the persistence contract for trending question counters.
type Store interface {
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}
