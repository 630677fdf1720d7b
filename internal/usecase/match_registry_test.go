package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *MatchRegistry {
	registry := NewMatchRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))

	clock := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return registry
}

func TestMatchRegistry(t *testing.T) {
	t.Run("Open matches are listed oldest first", func(t *testing.T) {
		registry := newRegistry()

		// Given: two matches opened one after another
		require.NoError(t, registry.Open("m-2", "10.0.0.2:5000"))
		require.NoError(t, registry.Open("m-1", "10.0.0.1:5000"))

		// When: listing live matches
		live := registry.Live()

		// Then: they are ordered by start time
		require.Len(t, live, 2)
		assert.Equal(t, "m-2", live[0].MatchID)
		assert.Equal(t, "10.0.0.2:5000", live[0].Remote)
		assert.Equal(t, "m-1", live[1].MatchID)
		assert.True(t, live[0].StartedAt.Before(live[1].StartedAt))
	})

	t.Run("Duplicate id is rejected", func(t *testing.T) {
		registry := newRegistry()

		require.NoError(t, registry.Open("m-1", ""))

		err := registry.Open("m-1", "")

		require.ErrorIs(t, err, ErrMatchAlreadyExists)
		assert.Len(t, registry.Live(), 1)
	})

	t.Run("Closed matches disappear", func(t *testing.T) {
		registry := newRegistry()
		require.NoError(t, registry.Open("m-1", ""))

		registry.Close("m-1")
		registry.Close("unknown")

		assert.Empty(t, registry.Live())
		require.NoError(t, registry.Open("m-1", ""))
	})

	t.Run("Concurrent connections", func(t *testing.T) {
		registry := NewMatchRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				id := fmt.Sprintf("m-%d", i)
				assert.NoError(t, registry.Open(id, ""))
				_ = registry.Live()
				if i%2 == 0 {
					registry.Close(id)
				}
			}()
		}
		wg.Wait()

		assert.Len(t, registry.Live(), 25)
	})
}
