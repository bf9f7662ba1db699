package audit

import (
	"context"
	"log/slog"
)

// LogSink writes audit events to the structured log. It is the default when
// no Kafka brokers are configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit",
		"audit_id", event.ID,
		"action", event.Action,
		"candidate_id", event.CandidateID,
		"actor", event.Actor,
	)
	return nil
}
