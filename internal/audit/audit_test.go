package audit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink records every event it receives.
type captureSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *captureSink) Write(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		s.fail = false
		return assert.AnError
	}
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestEmitAndDrain(t *testing.T) {
	publisher := NewPublisher(8, nil)
	sink := &captureSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewWorker(sink, publisher.Inbox(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	publisher.Emit(ActionCandidateCreated, "CAND-20260901-0001", "HR", map[string]string{"position": "Helper"})
	publisher.Emit(ActionSubmitted, "CAND-20260901-0001", "HR", nil)

	require.Eventually(t, func() bool {
		return len(sink.snapshot()) == 2
	}, time.Second, 10*time.Millisecond)

	events := sink.snapshot()
	assert.Equal(t, ActionCandidateCreated, events[0].Action)
	assert.Equal(t, "CAND-20260901-0001", events[0].CandidateID)
	assert.Equal(t, "HR", events[0].Actor)
	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, ActionSubmitted, events[1].Action)

	cancel()
	<-done
}

// A failing sink write is skipped, not retried forever.
func TestWorkerSkipsSinkFailures(t *testing.T) {
	publisher := NewPublisher(8, nil)
	sink := &captureSink{fail: true}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewWorker(sink, publisher.Inbox(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	publisher.Emit(ActionDocUploaded, "c1", "HR", nil)
	publisher.Emit(ActionDocUploaded, "c2", "HR", nil)

	require.Eventually(t, func() bool {
		events := sink.snapshot()
		return len(events) == 1 && events[0].CandidateID == "c2"
	}, time.Second, 10*time.Millisecond)
}

func TestEmitDropsWhenBufferFull(t *testing.T) {
	// No worker draining: the buffer fills and further emits drop silently.
	publisher := NewPublisher(2, nil)

	publisher.Emit(ActionDocUploaded, "c1", "HR", nil)
	publisher.Emit(ActionDocUploaded, "c2", "HR", nil)
	publisher.Emit(ActionDocUploaded, "c3", "HR", nil)

	assert.Len(t, publisher.Inbox(), 2)
}

func TestNilPublisherIsNoop(t *testing.T) {
	var publisher *Publisher
	assert.NotPanics(t, func() {
		publisher.Emit(ActionCandidateCreated, "c1", "HR", nil)
	})
}
