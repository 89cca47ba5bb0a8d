package faq

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
	"github.com/yanqian/faq-chatbot/pkg/util"
)

const defaultRecentQueryLimit = 50

// Service exposes the FAQ chatbot capabilities.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	Trending(ctx context.Context) ([]TrendingQuery, error)
	RecentQueries(ctx context.Context, limit int) ([]QueryLogEntry, error)
	Entries() []Entry
}

type service struct {
	cfg     Config
	matcher *Matcher
	store   Store
	queries QueryLogRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, matcher *Matcher, store Store, queries QueryLogRepository, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		matcher: matcher,
		store:   store,
		queries: queries,
		logger:  logger.With("component", "faq.service"),
		now:     util.NowUTC,
	}
}

func (s *service) Answer(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	match := s.matcher.Match(question)
	satisfactory := match.Satisfactory()

	if err := s.store.IncrementQuery(ctx, match.Normalized, question); err != nil {
		s.logger.Warn("faq trending increment failed", "error", err)
	}

	entry := QueryLogEntry{
		ID:              uuid.NewString(),
		Question:        question,
		Normalized:      match.Normalized,
		MatchedIndex:    match.Index,
		MatchedQuestion: match.Entry.Question,
		Score:           match.Score,
		Satisfactory:    satisfactory,
		Vector:          toFloat32(match.Vector),
		CreatedAt:       s.now(),
	}
	if err := s.queries.Append(ctx, entry); err != nil {
		s.logger.Warn("faq query log append failed", "error", err)
	}

	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		s.logger.Warn("faq trending fetch failed", "error", err)
		recs = nil
	}

	s.logger.Debug("faq matched", "index", match.Index, "score", match.Score, "normalized", match.Normalized)

	return Response{
		Question:        question,
		Normalized:      match.Normalized,
		Answer:          match.Entry.Answer,
		MatchedQuestion: match.Entry.Question,
		MatchedIndex:    match.Index,
		Score:           match.Score,
		Satisfactory:    satisfactory,
		Recommendations: recs,
	}, nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap("faq_error", "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) RecentQueries(ctx context.Context, limit int) ([]QueryLogEntry, error) {
	if limit < 0 {
		return nil, apperrors.Wrap("invalid_input", "limit cannot be negative", nil)
	}
	if limit == 0 {
		limit = s.cfg.RecentQueryLimit
	}
	if limit <= 0 {
		limit = defaultRecentQueryLimit
	}
	items, err := s.queries.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("faq_error", "failed to load recent queries", err)
	}
	return items, nil
}

func (s *service) Entries() []Entry {
	return s.matcher.KnowledgeBase().Entries()
}

func toFloat32(vector []float64) []float32 {
	if len(vector) == 0 {
		return nil
	}
	out := make([]float32, len(vector))
	for i, v := range vector {
		out[i] = float32(v)
	}
	return out
}
