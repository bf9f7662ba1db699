// Package audit captures who did what to which candidate. Events fan out
// through a buffered channel to a pluggable sink so request handling never
// blocks on the audit trail.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hireflow/internal/platform/metrics"
)

// Actions recorded by the hiring and onboarding flows.
const (
	ActionCandidateCreated = "candidate.created"
	ActionCategorySelected = "onboarding.category_selected"
	ActionSelfDeclaration  = "onboarding.self_declaration"
	ActionDocUploaded      = "onboarding.doc_uploaded"
	ActionSubmitted        = "onboarding.submitted"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Action      string            `json:"action"`
	CandidateID string            `json:"candidate_id"`
	Actor       string            `json:"actor"`
	Detail      map[string]string `json:"detail,omitempty"`
}

// Sink persists or forwards audit events.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Publisher is the producer side. Emit is best-effort: when the buffer is
// full the event is dropped and counted, never blocking the caller. A nil
// *Publisher is a no-op so tests can skip wiring.
type Publisher struct {
	inbox   chan Event
	metrics *metrics.Metrics
}

func NewPublisher(buffer int, m *metrics.Metrics) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{inbox: make(chan Event, buffer), metrics: m}
}

func (p *Publisher) Emit(action, candidateID, actor string, detail map[string]string) {
	if p == nil {
		return
	}
	event := Event{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Action:      action,
		CandidateID: candidateID,
		Actor:       actor,
		Detail:      detail,
	}
	select {
	case p.inbox <- event:
	default:
		p.metrics.IncAuditDropped()
	}
}

// Inbox exposes the consumer side for the worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }
