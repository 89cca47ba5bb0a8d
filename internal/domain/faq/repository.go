package faq

import "context"

// QueryLogRepository persists answered questions for later inspection.
type QueryLogRepository interface {
	Append(ctx context.Context, entry QueryLogEntry) error
	Recent(ctx context.Context, limit int) ([]QueryLogEntry, error)
}

// KnowledgeSource loads the entries the matcher is built from.
type KnowledgeSource interface {
	Load(ctx context.Context) ([]Entry, error)
}
