package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecarvalho/aulaplan/internal/llm"
)

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.AppendLLMEvent(ctx, llm.Event{
			Provider:     "gemini",
			Model:        "gemini-flash",
			Purpose:      "schedule",
			InputTokens:  100 * i,
			OutputTokens: 50 * i,
			LatencyMs:    int64(200 * i),
			Success:      true,
			RequestBody:  fmt.Sprintf("request %d", i),
			ResponseBody: fmt.Sprintf("response %d", i),
		}))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Newest first.
	require.Equal(t, "request 3", events[0].RequestBody)
	require.Equal(t, 300, events[0].InputTokens)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestEventRepo_GetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	require.NoError(t, repo.AppendLLMEvent(ctx, llm.Event{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "analysis",
		Success:      false,
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "analysis", got.Purpose)
	require.False(t, got.Success)
	require.Equal(t, "rate limited", got.ErrorMessage)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)
}
