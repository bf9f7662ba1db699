package eventlog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AppendReadAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("empty stream reads empty", func(t *testing.T) {
		rows, err := store.ReadAll(ctx, Candidates)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("rows come back in append order with all columns", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, Candidates, Record{
			"candidate_id": "CAND-20260901-0001",
			"event_type":   "CANDIDATE_CREATED",
			"mobile":       "9876543210",
		}))
		require.NoError(t, store.Append(ctx, Candidates, Record{
			"candidate_id": "CAND-20260901-0002",
			"event_type":   "CANDIDATE_CREATED",
		}))

		rows, err := store.ReadAll(ctx, Candidates)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "CAND-20260901-0001", rows[0]["candidate_id"])
		assert.Equal(t, "CAND-20260901-0002", rows[1]["candidate_id"])
		// absent optional fields are empty strings, not missing keys
		assert.Contains(t, rows[1], "remarks")
		assert.Equal(t, "", rows[1]["remarks"])
	})

	t.Run("streams are independent", func(t *testing.T) {
		rows, err := store.ReadAll(ctx, Onboarding)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	const writers = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Append(ctx, Onboarding, Record{"event_type": "DOC_UPLOADED"})
		}()
	}
	wg.Wait()

	rows, err := store.ReadAll(ctx, Onboarding)
	require.NoError(t, err)
	assert.Len(t, rows, writers, "no appends may be lost")
}
