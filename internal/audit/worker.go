package audit

import (
	"context"
	"log/slog"
)

// Worker drains the publisher inbox into a sink. Sink failures are logged
// and skipped; the audit trail is best-effort by design and must not wedge
// the pipeline behind one bad event.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Write(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit sink write failed",
					"action", event.Action,
					"candidate_id", event.CandidateID,
					"error", err.Error(),
				)
			}
		}
	}
}
