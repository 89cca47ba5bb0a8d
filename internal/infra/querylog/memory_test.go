package querylog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

func TestMemoryRepositoryRecentNewestFirst(t *testing.T) {
	repo := NewMemoryRepository(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, faq.QueryLogEntry{ID: fmt.Sprintf("q%d", i), MatchedIndex: i}))
	}

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "q4", recent[0].ID)
	require.Equal(t, "q3", recent[1].ID)
	require.Equal(t, "q2", recent[2].ID)

	recent, err = repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"q4"}, []string{recent[0].ID})
}

func TestMemoryRepositoryPartiallyFilled(t *testing.T) {
	repo := NewMemoryRepository(0)
	ctx := context.Background()

	recent, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, recent)

	vector := []float32{0.5, 0.5}
	require.NoError(t, repo.Append(ctx, faq.QueryLogEntry{ID: "only", Vector: vector}))
	vector[0] = 9

	recent, err = repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, []float32{0.5, 0.5}, recent[0].Vector)
}
