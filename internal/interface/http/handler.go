package http

import (
	_ "embed"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

//go:embed web/index.html
var indexHTML []byte

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

type chatbotResponse struct {
	Answer       string `json:"answer"`
	Satisfactory bool   `json:"satisfactory"`
}

// Home serves the chat page.
func (h *Handler) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Chatbot answers a question with the closest FAQ entry. A missing question
// is treated as empty.
func (h *Handler) Chatbot(c *gin.Context) {
	resp, ok := h.answer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chatbotResponse{Answer: resp.Answer, Satisfactory: resp.Satisfactory})
}

// Match returns the full match details for a question.
func (h *Handler) Match(c *gin.Context) {
	resp, ok := h.answer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) answer(c *gin.Context) (faq.Response, bool) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return faq.Response{}, false
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError("faq_failed", err))
		return faq.Response{}, false
	}
	return resp, true
}

// Trending returns the most common questions.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError("faq_failed", err))
		return
	}
	if items == nil {
		items = []faq.TrendingQuery{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Entries lists the knowledge base.
func (h *Handler) Entries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.faqSvc.Entries()})
}

// RecentQueries returns the newest query log entries.
func (h *Handler) RecentQueries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be an integer", err))
			return
		}
		limit = parsed
	}
	items, err := h.faqSvc.RecentQueries(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError("faq_failed", err))
		return
	}
	if items == nil {
		items = []faq.QueryLogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"queries": items})
}

// Health reports readiness together with the knowledge base size.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": len(h.faqSvc.Entries())})
}
