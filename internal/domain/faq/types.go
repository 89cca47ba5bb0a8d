package faq

import "time"

// Entry is one immutable question/answer pair of the knowledge base.
type Entry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Request encapsulates a chatbot question.
type Request struct {
	Question string `json:"question"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Question        string          `json:"question"`
	Normalized      string          `json:"normalized"`
	Answer          string          `json:"answer"`
	MatchedQuestion string          `json:"matchedQuestion"`
	MatchedIndex    int             `json:"matchedIndex"`
	Score           float64         `json:"score"`
	Satisfactory    bool            `json:"satisfactory"`
	Recommendations []TrendingQuery `json:"recommendations"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// QueryLogEntry records one answered question.
type QueryLogEntry struct {
	ID              string    `json:"id"`
	Question        string    `json:"question"`
	Normalized      string    `json:"normalized"`
	MatchedIndex    int       `json:"matchedIndex"`
	MatchedQuestion string    `json:"matchedQuestion"`
	Score           float64   `json:"score"`
	Satisfactory    bool      `json:"satisfactory"`
	Vector          []float32 `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}
