package querylog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// PostgresRepository stores answered questions with their TF-IDF projection:
//
//	CREATE EXTENSION IF NOT EXISTS vector;
//	CREATE TABLE faq_queries (
//	    id               UUID PRIMARY KEY,
//	    question         TEXT NOT NULL,
//	    normalized       TEXT NOT NULL,
//	    matched_index    INT NOT NULL,
//	    matched_question TEXT NOT NULL,
//	    score            DOUBLE PRECISION NOT NULL,
//	    satisfactory     BOOLEAN NOT NULL,
//	    query_vector     vector,
//	    created_at       TIMESTAMPTZ NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Append inserts one log row.
func (r *PostgresRepository) Append(ctx context.Context, entry faq.QueryLogEntry) error {
	var vector any
	if len(entry.Vector) > 0 {
		vector = pgvector.NewVector(entry.Vector)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO faq_queries (id, question, normalized, matched_index, matched_question, score, satisfactory, query_vector, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, entry.ID, entry.Question, entry.Normalized, entry.MatchedIndex, entry.MatchedQuestion, entry.Score, entry.Satisfactory, vector, entry.CreatedAt)
	return err
}

// Recent returns the newest rows first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]faq.QueryLogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, question, normalized, matched_index, matched_question, score, satisfactory, query_vector, created_at
		FROM faq_queries
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []faq.QueryLogEntry
	for rows.Next() {
		var (
			entry  faq.QueryLogEntry
			vector *pgvector.Vector
		)
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Normalized, &entry.MatchedIndex, &entry.MatchedQuestion, &entry.Score, &entry.Satisfactory, &vector, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if vector != nil {
			entry.Vector = vector.Slice()
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ faq.QueryLogRepository = (*PostgresRepository)(nil)
