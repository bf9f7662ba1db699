package candidate

import (
	"context"
	"sync"
)

// Sequencer hands out the next per-day sequence number for candidate IDs.
// Implementations must be safe for concurrent use: two allocations for the
// same day must never return the same number.
type Sequencer interface {
	Next(ctx context.Context, dateID string) (int, error)
}

// MemorySequencer is the in-process default. Seed lets the registry prime it
// from existing records on startup so restarts do not reuse identifiers.
type MemorySequencer struct {
	mu   sync.Mutex
	last map[string]int
}

func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{last: make(map[string]int)}
}

func (s *MemorySequencer) Next(_ context.Context, dateID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[dateID]++
	return s.last[dateID], nil
}

// Seed raises the stored maximum for a day if the given value is higher.
func (s *MemorySequencer) Seed(dateID string, seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.last[dateID] {
		s.last[dateID] = seq
	}
}
