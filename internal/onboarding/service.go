package onboarding

import (
	"context"
	"log/slog"
	"time"

	"hireflow/internal/audit"
	"hireflow/internal/candidate"
	"hireflow/internal/eventlog"
	"hireflow/internal/onboarding/checklist"
	"hireflow/internal/platform/metrics"
	dErrors "hireflow/pkg/domain-errors"
)

const forbiddenMessage = "Onboarding is only allowed for Selected candidates."

// Directory is the slice of the candidate registry this service needs.
type Directory interface {
	Get(ctx context.Context, candidateID string) (candidate.Snapshot, error)
}

// Service drives the onboarding workflow: category selection, declaration,
// upload ledger, checklist reads, and the submission gate. Every query
// replays the candidate's events; there is no cached state to drift.
type Service struct {
	store      eventlog.Store
	candidates Directory
	decoder    *Decoder
	logger     *slog.Logger
	metrics    *metrics.Metrics
	audit      *audit.Publisher
	actor      string
	clock      func() time.Time
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithAudit(p *audit.Publisher, actor string) Option {
	return func(s *Service) {
		s.audit = p
		s.actor = actor
	}
}

func WithClock(clock func() time.Time) Option { return func(s *Service) { s.clock = clock } }

func NewService(store eventlog.Store, candidates Directory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:      store,
		candidates: candidates,
		logger:     logger,
		actor:      "HR",
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.decoder = NewDecoder(logger, s.metrics)
	return s
}

// State replays the candidate's onboarding events into the materialized view.
func (s *Service) State(ctx context.Context, candidateID string) (State, error) {
	rows, err := s.store.ReadAll(ctx, eventlog.Onboarding)
	if err != nil {
		return State{}, dErrors.Wrap(dErrors.CodeUnavailable, "event store unavailable", err)
	}
	var events []Event
	for _, rec := range rows {
		if rec["candidate_id"] != candidateID {
			continue
		}
		if event, ok := s.decoder.Decode(rec); ok {
			events = append(events, event)
		}
	}
	return Project(events), nil
}

// Checklist recomputes the checklist for the candidate's current state.
func (s *Service) Checklist(ctx context.Context, candidateID string) (checklist.Result, State, error) {
	if _, err := s.candidates.Get(ctx, candidateID); err != nil {
		return checklist.Result{}, State{}, err
	}
	state, err := s.State(ctx, candidateID)
	if err != nil {
		return checklist.Result{}, State{}, err
	}
	s.metrics.IncChecklistEvaluations()
	return state.Checklist(), state, nil
}

// Documents lists the candidate's upload ledger.
func (s *Service) Documents(ctx context.Context, candidateID string) ([]Upload, error) {
	state, err := s.State(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return state.Uploads, nil
}

// requireSelected gates mutating onboarding actions on the candidate's
// latest selection status.
func (s *Service) requireSelected(ctx context.Context, candidateID string) (candidate.Snapshot, error) {
	snap, err := s.candidates.Get(ctx, candidateID)
	if err != nil {
		return candidate.Snapshot{}, err
	}
	if !snap.Selected() {
		return candidate.Snapshot{}, dErrors.New(dErrors.CodeForbidden, forbiddenMessage)
	}
	return snap, nil
}

// SelectCategory records the employee category and its flags. Re-selection
// appends another event and the projection keeps the last one.
func (s *Service) SelectCategory(ctx context.Context, candidateID string, category checklist.Category, flags checklist.Flags) error {
	if _, err := s.requireSelected(ctx, candidateID); err != nil {
		return err
	}
	if !category.Valid() {
		return dErrors.Validation(map[string]string{"category": "Employee category is required."})
	}

	event := CategorySelected{
		Candidate: candidateID,
		Category:  category,
		Flags:     flags,
		At:        s.now(),
	}
	if err := s.append(ctx, event); err != nil {
		return err
	}
	s.audit.Emit(audit.ActionCategorySelected, candidateID, s.actor, map[string]string{
		"category": string(category),
	})
	return nil
}

// RecordSelfDeclaration replaces the declaration fields wholesale. All six
// fields are required.
func (s *Service) RecordSelfDeclaration(ctx context.Context, candidateID string, fields checklist.SelfDeclaration) error {
	if _, err := s.requireSelected(ctx, candidateID); err != nil {
		return err
	}

	fieldErrs := map[string]string{}
	for name, value := range map[string]string{
		"name":        fields.Name,
		"age":         fields.Age,
		"address":     fields.Address,
		"skill":       fields.Skill,
		"willingness": fields.Willingness,
		"signature":   fields.Signature,
	} {
		if value == "" {
			fieldErrs[name] = "This field is required."
		}
	}
	if len(fieldErrs) > 0 {
		return dErrors.Validation(fieldErrs)
	}

	event := SelfDeclared{Candidate: candidateID, Fields: fields, At: s.now()}
	if err := s.append(ctx, event); err != nil {
		return err
	}
	s.audit.Emit(audit.ActionSelfDeclaration, candidateID, s.actor, nil)
	return nil
}

// UploadRequest references a document the upload collaborator has already
// stored; the service only records the ledger entry.
type UploadRequest struct {
	DocKey           string
	Category         string
	OriginalFilename string
	StoredPath       string
	Required         bool
}

// RecordUpload appends one DOC_UPLOADED event. Repeat uploads under the same
// doc_key accumulate.
func (s *Service) RecordUpload(ctx context.Context, candidateID string, req UploadRequest) error {
	if _, err := s.requireSelected(ctx, candidateID); err != nil {
		return err
	}
	fieldErrs := map[string]string{}
	if req.DocKey == "" {
		fieldErrs["doc_key"] = "doc_key is required."
	}
	if req.StoredPath == "" {
		fieldErrs["file"] = "File is required."
	}
	if len(fieldErrs) > 0 {
		return dErrors.Validation(fieldErrs)
	}

	category := req.Category
	if category == "" {
		category = "general"
	}
	event := DocUploaded{
		Candidate:        candidateID,
		Category:         category,
		DocKey:           req.DocKey,
		OriginalFilename: req.OriginalFilename,
		StoredPath:       req.StoredPath,
		UploadedAt:       s.now(),
		UploadedBy:       s.actor,
		Required:         req.Required,
		Verified:         false,
	}
	if err := s.append(ctx, event); err != nil {
		return err
	}
	s.audit.Emit(audit.ActionDocUploaded, candidateID, s.actor, map[string]string{
		"doc_key": req.DocKey,
	})
	return nil
}

// Submit is the gate for the terminal event. It re-runs the checklist, folds
// in the verification requirement, and appends ONBOARDING_SUBMITTED exactly
// once per candidate: a second submission is a conflict, not another event.
func (s *Service) Submit(ctx context.Context, candidateID string, verified bool) ([]string, error) {
	if _, err := s.requireSelected(ctx, candidateID); err != nil {
		return nil, err
	}
	state, err := s.State(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if state.Submitted {
		return nil, dErrors.New(dErrors.CodeConflict, "Onboarding already submitted.")
	}

	missing := state.Checklist().Missing
	if !verified {
		missing = append(missing, "Verification checkbox must be checked.")
	}
	if len(missing) > 0 {
		return missing, dErrors.New(dErrors.CodeValidation, "onboarding incomplete")
	}

	event := Submitted{
		Candidate:   candidateID,
		Verified:    true,
		FinalStatus: "COMPLETED",
		At:          s.now(),
	}
	if err := s.append(ctx, event); err != nil {
		return nil, err
	}
	s.metrics.IncSubmissionsCompleted()
	s.audit.Emit(audit.ActionSubmitted, candidateID, s.actor, nil)
	s.logger.InfoContext(ctx, "onboarding submitted", "candidate_id", candidateID)
	return nil, nil
}

func (s *Service) append(ctx context.Context, event Event) error {
	if err := s.store.Append(ctx, eventlog.Onboarding, event.Record()); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "event store unavailable", err)
	}
	s.metrics.IncEventsAppended(eventlog.Onboarding.Name)
	return nil
}

func (s *Service) now() string {
	return s.clock().UTC().Format(time.RFC3339)
}
