package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/infra/config"
	"github.com/yanqian/faq-chatbot/internal/infra/faqstore"
	"github.com/yanqian/faq-chatbot/internal/infra/querylog"
	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
)

func TestRouter_ChatbotResetECU(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/chatbot", `{"question":"How do I reset the ECU?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "To reset the ECU, turn the ignition on, hold the reset button for 10 seconds, then turn the ignition off.", got["answer"])
	require.Equal(t, true, got["satisfactory"])
}

func TestRouter_ChatbotMissingQuestionReturnsFirstEntry(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/chatbot", `{}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chatbotResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Kawasaki super bikes come with a two-year warranty period.", got.Answer)
	require.True(t, got.Satisfactory)
}

func TestRouter_ChatbotInvalidJSON(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/chatbot", `{"question":`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_MatchReturnsDetails(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/faq/match", `{"question":"What is the recommended tire pressure?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got faq.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 6, got.MatchedIndex)
	require.Equal(t, "recommended tire pressure", got.Normalized)
	require.Equal(t, "What is the recommended tire pressure for Kawasaki super bikes?", got.MatchedQuestion)
	require.Greater(t, got.Score, 0.0)
	require.Len(t, got.Recommendations, 1)
}

func TestRouter_TrendingAndQueries(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	performRequest(server, http.MethodPost, "/chatbot", `{"question":"How do I reset the ECU?"}`)
	performRequest(server, http.MethodPost, "/chatbot", `{"question":"how do i RESET the ecu"}`)
	performRequest(server, http.MethodPost, "/chatbot", `{"question":"Is there a mobile app?"}`)

	recorder := performRequest(server, http.MethodGet, "/api/v1/faq/trending", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var trending struct {
		Recommendations []faq.TrendingQuery `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &trending))
	require.Len(t, trending.Recommendations, 2)
	require.Equal(t, faq.TrendingQuery{Query: "How do I reset the ECU?", Count: 2}, trending.Recommendations[0])

	recorder = performRequest(server, http.MethodGet, "/api/v1/faq/queries?limit=2", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var queries struct {
		Queries []faq.QueryLogEntry `json:"queries"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &queries))
	require.Len(t, queries.Queries, 2)
	require.Equal(t, "Is there a mobile app?", queries.Queries[0].Question)
	require.Equal(t, 4, queries.Queries[0].MatchedIndex)
	require.NotEmpty(t, queries.Queries[0].ID)
}

func TestRouter_QueriesRejectsBadLimit(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodGet, "/api/v1/faq/queries?limit=abc", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = performRequest(server, http.MethodGet, "/api/v1/faq/queries?limit=-1", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_EntriesAndHealth(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodGet, "/api/v1/faq/entries", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var entries struct {
		Entries []faq.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &entries))
	require.Equal(t, faq.BuiltinEntries(), entries.Entries)

	recorder = performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok","entries":10}`, recorder.Body.String())
}

func TestRouter_HomeServesHTML(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	require.Contains(t, recorder.Body.String(), "/chatbot")
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	recorder := performRequest(server, http.MethodGet, "/healthz", "")
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))
}

func TestRouter_RateLimitExceeded(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2})

	for i := 0; i < 2; i++ {
		recorder := performRequest(server, http.MethodPost, "/chatbot", `{"question":"warranty"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := performRequest(server, http.MethodPost, "/chatbot", `{"question":"warranty"}`)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	// health checks are not limited
	recorder = performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodOptions, "/chatbot", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ServiceErrorMapping(t *testing.T) {
	svc := &stubFAQService{
		answerFn: func(ctx context.Context, req faq.Request) (faq.Response, error) {
			return faq.Response{}, apperrors.Wrap("knowledge_source_error", "knowledge base unavailable", nil)
		},
		trendingFn: func(ctx context.Context) ([]faq.TrendingQuery, error) {
			return nil, apperrors.Wrap("faq_error", "failed to load trending queries", nil)
		},
	}
	server := newRouterWithService(svc, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/chatbot", `{"question":"hi"}`)
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	require.Equal(t, "faq_failed", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = performRequest(server, http.MethodGet, "/api/v1/faq/trending", "")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Contains(t, decodeErrorBody(t, recorder.Body.Bytes())["error"]["message"], "failed to load trending queries")
}

func TestIPRateLimiterForgetsIdleVisitors(t *testing.T) {
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 1})
	current := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	require.True(t, limiter.allow("10.0.0.1"))
	require.False(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.2"))

	current = current.Add(visitorTTL + time.Second)
	require.True(t, limiter.allow("10.0.0.2"))
	require.Len(t, limiter.visitors, 1)
}

func performRequest(server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, limits config.RateLimitConfig) *http.Server {
	t.Helper()
	kb, err := faq.NewKnowledgeBase(faq.BuiltinEntries())
	require.NoError(t, err)
	matcher := faq.NewMatcher(kb, faq.NewNormalizer(nil))
	svc := faq.NewService(
		faq.Config{TopRecommendations: 5, RecentQueryLimit: 50},
		matcher,
		faqstore.NewMemoryStore(),
		querylog.NewMemoryRepository(100),
		newTestLogger(),
	)
	return newRouterWithService(svc, limits)
}

func newRouterWithService(svc faq.Service, limits config.RateLimitConfig) *http.Server {
	handler := NewHandler(svc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			RateLimit:    limits,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubFAQService struct {
	answerFn   func(ctx context.Context, req faq.Request) (faq.Response, error)
	trendingFn func(ctx context.Context) ([]faq.TrendingQuery, error)
}

func (s *stubFAQService) Answer(ctx context.Context, req faq.Request) (faq.Response, error) {
	if s.answerFn != nil {
		return s.answerFn(ctx, req)
	}
	return faq.Response{}, nil
}

func (s *stubFAQService) Trending(ctx context.Context) ([]faq.TrendingQuery, error) {
	if s.trendingFn != nil {
		return s.trendingFn(ctx)
	}
	return nil, nil
}

func (s *stubFAQService) RecentQueries(context.Context, int) ([]faq.QueryLogEntry, error) {
	return nil, nil
}

func (s *stubFAQService) Entries() []faq.Entry {
	return nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
