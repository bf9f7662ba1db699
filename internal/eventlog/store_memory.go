package eventlog

import (
	"context"
	"sync"
)

// MemoryStore keeps streams in process memory. It is the default for tests
// and serializes appends per store, which closes the lost-write window a
// read-modify-write file store would have.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][][]string)}
}

func (s *MemoryStore) Append(_ context.Context, stream Stream, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams[stream.Name] = append(s.streams[stream.Name], row(stream, rec))
	return nil
}

func (s *MemoryStore) ReadAll(_ context.Context, stream Stream) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.streams[stream.Name]
	out := make([]Record, 0, len(rows))
	for _, cells := range rows {
		out = append(out, record(stream, cells))
	}
	return out, nil
}
