package querylog

import (
	"context"
	"sync"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

const defaultCapacity = 500

// MemoryRepository keeps the newest entries in a fixed size ring.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []faq.QueryLogEntry
	next    int
	full    bool
}

// NewMemoryRepository constructs a ring holding up to capacity entries.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &MemoryRepository{entries: make([]faq.QueryLogEntry, capacity)}
}

// Append implements faq.QueryLogRepository.
func (r *MemoryRepository) Append(_ context.Context, entry faq.QueryLogEntry) error {
	entry.Vector = append([]float32(nil), entry.Vector...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent implements faq.QueryLogRepository, newest first.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]faq.QueryLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	size := r.next
	if r.full {
		size = len(r.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]faq.QueryLogEntry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out, nil
}

var _ faq.QueryLogRepository = (*MemoryRepository)(nil)
