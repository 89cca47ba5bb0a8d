package kbsource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// PostgresSource reads entries from the faq_entries table:
//
//	CREATE TABLE faq_entries (
//	    id       BIGSERIAL PRIMARY KEY,
//	    position INT NOT NULL DEFAULT 0,
//	    question TEXT NOT NULL,
//	    answer   TEXT NOT NULL
//	);
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource constructs the source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Load implements faq.KnowledgeSource. Row order defines match tie-breaks.
func (s *PostgresSource) Load(ctx context.Context) ([]faq.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT question, answer
		FROM faq_entries
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query faq entries: %w", err)
	}
	defer rows.Close()

	var entries []faq.Entry
	for rows.Next() {
		var entry faq.Entry
		if err := rows.Scan(&entry.Question, &entry.Answer); err != nil {
			return nil, fmt.Errorf("scan faq entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ faq.KnowledgeSource = (*PostgresSource)(nil)
