// Package onboarding replays a candidate's post-selection events into the
// materialized state the checklist and submission gate work from.
package onboarding

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"hireflow/internal/eventlog"
	"hireflow/internal/onboarding/checklist"
	"hireflow/internal/platform/metrics"
)

// Event types on the onboarding stream.
const (
	EventCategorySelected = "CATEGORY_SELECTED"
	EventSelfDeclaration  = "SELF_DECLARATION"
	EventDocUploaded      = "DOC_UPLOADED"
	EventSubmitted        = "ONBOARDING_SUBMITTED"
)

// Event is the tagged union over the four onboarding event kinds. Each
// variant carries its own typed payload; the opaque metadata blob exists only
// at the storage boundary.
type Event interface {
	CandidateID() string
	Record() eventlog.Record
}

// CategorySelected fixes the employee category and its qualifying flags.
// Last write wins on replay.
type CategorySelected struct {
	Candidate string
	Category  checklist.Category
	Flags     checklist.Flags
	At        string
}

func (e CategorySelected) CandidateID() string { return e.Candidate }

func (e CategorySelected) Record() eventlog.Record {
	meta, _ := json.Marshal(e.Flags)
	return eventlog.Record{
		"candidate_id": e.Candidate,
		"event_type":   EventCategorySelected,
		"category":     string(e.Category),
		"metadata":     string(meta),
		"timestamp":    e.At,
	}
}

// SelfDeclared replaces the declaration fields wholesale.
type SelfDeclared struct {
	Candidate string
	Fields    checklist.SelfDeclaration
	At        string
}

func (e SelfDeclared) CandidateID() string { return e.Candidate }

func (e SelfDeclared) Record() eventlog.Record {
	meta, _ := json.Marshal(e.Fields)
	return eventlog.Record{
		"candidate_id": e.Candidate,
		"event_type":   EventSelfDeclaration,
		"metadata":     string(meta),
		"timestamp":    e.At,
	}
}

// DocUploaded records one stored document. Repeat uploads under the same
// doc_key all persist; the checklist counts them.
type DocUploaded struct {
	Candidate        string
	Category         string
	DocKey           string
	OriginalFilename string
	StoredPath       string
	UploadedAt       string
	UploadedBy       string
	Required         bool
	Verified         bool
}

func (e DocUploaded) CandidateID() string { return e.Candidate }

func (e DocUploaded) Record() eventlog.Record {
	return eventlog.Record{
		"candidate_id":      e.Candidate,
		"event_type":        EventDocUploaded,
		"category":          e.Category,
		"doc_key":           e.DocKey,
		"original_filename": e.OriginalFilename,
		"stored_path":       e.StoredPath,
		"uploaded_at":       e.UploadedAt,
		"uploaded_by":       e.UploadedBy,
		"required":          strconv.FormatBool(e.Required),
		"verified":          strconv.FormatBool(e.Verified),
		"timestamp":         e.UploadedAt,
	}
}

// Submitted is the terminal event.
type Submitted struct {
	Candidate   string
	Verified    bool
	FinalStatus string
	At          string
}

func (e Submitted) CandidateID() string { return e.Candidate }

func (e Submitted) Record() eventlog.Record {
	meta, _ := json.Marshal(map[string]string{"final_status": e.FinalStatus})
	return eventlog.Record{
		"candidate_id": e.Candidate,
		"event_type":   EventSubmitted,
		"verified":     strconv.FormatBool(e.Verified),
		"metadata":     string(meta),
		"timestamp":    e.At,
	}
}

// Decoder rebuilds typed events from stream records. Malformed metadata does
// not fail a replay: the event folds in with zero-valued payload, the
// corruption counter moves, and a warning is logged. Corrupted history must
// not brick a candidate's onboarding.
type Decoder struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewDecoder(logger *slog.Logger, m *metrics.Metrics) *Decoder {
	return &Decoder{logger: logger, metrics: m}
}

// Decode returns the typed event for a record, or (nil, false) for unknown
// event types, which replay skips.
func (d *Decoder) Decode(rec eventlog.Record) (Event, bool) {
	candidateID := rec["candidate_id"]

	switch rec["event_type"] {
	case EventCategorySelected:
		return CategorySelected{
			Candidate: candidateID,
			Category:  checklist.Category(rec["category"]),
			Flags:     decodeMeta[checklist.Flags](d, rec),
			At:        rec["timestamp"],
		}, true

	case EventSelfDeclaration:
		return SelfDeclared{
			Candidate: candidateID,
			Fields:    decodeMeta[checklist.SelfDeclaration](d, rec),
			At:        rec["timestamp"],
		}, true

	case EventDocUploaded:
		return DocUploaded{
			Candidate:        candidateID,
			Category:         rec["category"],
			DocKey:           rec["doc_key"],
			OriginalFilename: rec["original_filename"],
			StoredPath:       rec["stored_path"],
			UploadedAt:       rec["uploaded_at"],
			UploadedBy:       rec["uploaded_by"],
			Required:         rec["required"] == "true",
			Verified:         rec["verified"] == "true",
		}, true

	case EventSubmitted:
		meta := decodeMeta[submittedMeta](d, rec)
		return Submitted{
			Candidate:   candidateID,
			Verified:    rec["verified"] == "true",
			FinalStatus: meta.FinalStatus,
			At:          rec["timestamp"],
		}, true
	}

	return nil, false
}

type submittedMeta struct {
	FinalStatus string `json:"final_status"`
}

// decodeMeta decodes the metadata blob, falling back to the zero value on
// corruption so a bad row cannot poison the fold.
func decodeMeta[T any](d *Decoder, rec eventlog.Record) T {
	var zero T
	raw := rec["metadata"]
	if raw == "" {
		return zero
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		d.metrics.IncMetadataCorruption()
		if d.logger != nil {
			d.logger.Warn("onboarding metadata corrupt, replaying with defaults",
				"candidate_id", rec["candidate_id"],
				"event_type", rec["event_type"],
				"error", err.Error(),
			)
		}
		return zero
	}
	return v
}
