package candidate

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"hireflow/internal/audit"
	"hireflow/internal/eventlog"
	"hireflow/internal/platform/metrics"
	dErrors "hireflow/pkg/domain-errors"
)

// Service is the candidate registry: it allocates identifiers, guards against
// duplicate applications, and folds the stream into current snapshots.
type Service struct {
	store   eventlog.Store
	logger  *slog.Logger
	seq     Sequencer
	metrics *metrics.Metrics
	audit   *audit.Publisher
	actor   string
	clock   func() time.Time

	// mu serializes the read-allocate-append cycle. Without it two
	// concurrent creates could both read the same day maximum and mint the
	// same identifier.
	mu sync.Mutex
}

// Option configures optional collaborators on the Service.
type Option func(*Service)

// WithSequencer swaps the scan-based identifier allocation for a dedicated
// sequence generator (e.g. Redis INCR) that stays correct across processes.
func WithSequencer(seq Sequencer) Option { return func(s *Service) { s.seq = seq } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithAudit(p *audit.Publisher, actor string) Option {
	return func(s *Service) {
		s.audit = p
		s.actor = actor
	}
}

// WithClock overrides time for tests.
func WithClock(clock func() time.Time) Option { return func(s *Service) { s.clock = clock } }

func NewService(store eventlog.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		actor:  "HR",
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the intake payload, rejects same-day duplicates, mints the
// next identifier for the day, and appends the creation event.
func (s *Service) Create(ctx context.Context, req CreateRequest) (string, error) {
	clean, fieldErrs := Validate(req)
	if len(fieldErrs) > 0 {
		return "", dErrors.Validation(fieldErrs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.store.ReadAll(ctx, eventlog.Candidates)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeUnavailable, "event store unavailable", err)
	}

	now := s.clock()
	today := now.Format("2006-01-02")
	for _, rec := range rows {
		if rec["event_type"] == EventCreated &&
			rec["mobile"] == clean.Mobile &&
			rec["position"] == clean.Position &&
			strings.HasPrefix(rec["created_at"], today) {
			return "", dErrors.New(dErrors.CodeConflict, "Duplicate candidate for the same position and date.")
		}
	}

	dateID := now.Format("20060102")
	seq, err := s.nextSequence(ctx, dateID, rows)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeUnavailable, "sequence allocation failed", err)
	}
	candidateID := FormatID(dateID, seq)
	createdAt := now.UTC().Format(time.RFC3339)

	if err := s.store.Append(ctx, eventlog.Candidates, toRecord(candidateID, createdAt, clean)); err != nil {
		return "", dErrors.Wrap(dErrors.CodeUnavailable, "event store unavailable", err)
	}

	s.metrics.IncCandidatesCreated()
	s.metrics.IncEventsAppended(eventlog.Candidates.Name)
	s.audit.Emit(audit.ActionCandidateCreated, candidateID, s.actor, map[string]string{
		"position": clean.Position,
		"source":   clean.Source,
	})
	s.logger.InfoContext(ctx, "candidate created",
		"candidate_id", candidateID,
		"position", clean.Position,
	)
	return candidateID, nil
}

// nextSequence prefers the configured sequencer; otherwise it scans existing
// identifiers for the day and takes max+1, which is safe only because the
// caller holds s.mu across the scan and the append.
func (s *Service) nextSequence(ctx context.Context, dateID string, rows []eventlog.Record) (int, error) {
	if s.seq != nil {
		return s.seq.Next(ctx, dateID)
	}
	maxSeq := 0
	for _, rec := range rows {
		id := rec["candidate_id"]
		if !strings.Contains(id, dateID) {
			continue
		}
		if seq := SequenceOf(id); seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

// Get returns the latest snapshot for a candidate, folding latest-wins over
// the stream.
func (s *Service) Get(ctx context.Context, candidateID string) (Snapshot, error) {
	rows, err := s.store.ReadAll(ctx, eventlog.Candidates)
	if err != nil {
		return Snapshot{}, dErrors.Wrap(dErrors.CodeUnavailable, "event store unavailable", err)
	}
	var found *Snapshot
	for _, rec := range rows {
		if rec["candidate_id"] == candidateID {
			snap := fromRecord(rec)
			found = &snap
		}
	}
	if found == nil {
		return Snapshot{}, dErrors.New(dErrors.CodeNotFound, "Candidate not found.")
	}
	return *found, nil
}

// List returns the current snapshot of every candidate, ordered by first
// appearance in the stream.
func (s *Service) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.store.ReadAll(ctx, eventlog.Candidates)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "event store unavailable", err)
	}
	order := make([]string, 0)
	latest := make(map[string]Snapshot)
	for _, rec := range rows {
		id := rec["candidate_id"]
		if id == "" {
			continue
		}
		if _, seen := latest[id]; !seen {
			order = append(order, id)
		}
		latest[id] = fromRecord(rec)
	}
	out := make([]Snapshot, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out, nil
}
