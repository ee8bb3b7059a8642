package projection

import (
	"baro-server/domain"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryProjector_OnMessageAppended(t *testing.T) {
	req := require.New(t)
	projector := NewSummaryProjector()

	t.Run("should materialize the summary on first projection", func(t *testing.T) {
		projector.OnMessageAppended("room-12345678-abcd", "first reply", 1000)

		summary, ok := projector.Summary("room-12345678-abcd")
		req.True(ok)
		req.Equal("room-12345678-abcd", summary.ID)
		req.Equal(domain.DefaultTitle("room-12345678-abcd"), summary.Title)
		req.Equal("first reply", summary.LastMessage)
		req.Equal(int64(1000), summary.CreatedAt)
	})

	t.Run("should only overwrite LastMessage afterwards", func(t *testing.T) {
		projector.OnMessageAppended("room-12345678-abcd", "second reply", 2000)

		summary, ok := projector.Summary("room-12345678-abcd")
		req.True(ok)
		req.Equal("second reply", summary.LastMessage)
		// Title and CreatedAt are frozen at materialization.
		req.Equal(domain.DefaultTitle("room-12345678-abcd"), summary.Title)
		req.Equal(int64(1000), summary.CreatedAt)
	})

	t.Run("should not know rooms that were never projected", func(t *testing.T) {
		_, ok := projector.Summary("never-projected")

		req.False(ok)
	})
}

func TestSummaryProjector_ListSummaries(t *testing.T) {
	req := require.New(t)
	projector := NewSummaryProjector()

	req.Empty(projector.ListSummaries())

	projector.OnMessageAppended("room-b", "reply b", 10)
	projector.OnMessageAppended("room-a", "reply a", 20)
	projector.OnMessageAppended("room-b", "reply b2", 30)

	summaries := projector.ListSummaries()
	req.Len(summaries, 2)
	// Materialization order, not lexical order.
	req.Equal("room-b", summaries[0].ID)
	req.Equal("reply b2", summaries[0].LastMessage)
	req.Equal("room-a", summaries[1].ID)
}

func TestSummaryProjector_ConcurrentProjections(t *testing.T) {
	req := require.New(t)
	projector := NewSummaryProjector()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			projector.OnMessageAppended("shared", fmt.Sprintf("reply-%d", n), int64(n))
		}(i)
	}
	wg.Wait()

	summaries := projector.ListSummaries()
	req.Len(summaries, 1)
	// Whichever write won, the summary stays internally consistent.
	summary, ok := projector.Summary("shared")
	req.True(ok)
	req.Equal("shared", summary.ID)
	req.NotEmpty(summary.LastMessage)
}
