// Package eventlog is the append-only event store backing the candidate and
// onboarding streams. Rows are schema-on-write: every record is persisted
// under a fixed, ordered column list and absent optional fields are stored as
// empty strings. The column lists are part of the wire contract with the HTTP
// layer and any external consumer of the log files.
package eventlog

import "context"

// Stream identifies one append-only sequence of events and fixes its column
// schema.
type Stream struct {
	Name    string
	Columns []string
}

// Candidates is the hiring stream. The last event per candidate_id is the
// authoritative snapshot.
var Candidates = Stream{
	Name: "candidates",
	Columns: []string{
		"candidate_id",
		"event_type",
		"created_at",
		"candidate_name",
		"mobile",
		"email",
		"position",
		"source",
		"interview_scheduled",
		"interview_date",
		"interview_status",
		"selection_status",
		"offer_released",
		"joining_date",
		"final_status",
		"remarks",
	},
}

// Onboarding is the post-selection stream. Events are a tagged variant keyed
// by event_type; metadata carries an event-type-specific JSON blob.
var Onboarding = Stream{
	Name: "onboarding",
	Columns: []string{
		"candidate_id",
		"event_type",
		"category",
		"doc_key",
		"original_filename",
		"stored_path",
		"uploaded_at",
		"uploaded_by",
		"required",
		"verified",
		"metadata",
		"timestamp",
	},
}

// Record is one event row as field name → value. Columns absent from the map
// persist as "".
type Record map[string]string

// Store is the append-only log. An Append either durably adds exactly one
// complete row or fails without mutating the stream; ReadAll returns every
// row in append order. Storage failures wrap sentinel.ErrUnavailable.
type Store interface {
	Append(ctx context.Context, stream Stream, rec Record) error
	ReadAll(ctx context.Context, stream Stream) ([]Record, error)
}

// row flattens a record into stream column order.
func row(stream Stream, rec Record) []string {
	out := make([]string, len(stream.Columns))
	for i, col := range stream.Columns {
		out[i] = rec[col]
	}
	return out
}

// record rebuilds a field map from an ordered row. Extra cells beyond the
// schema are dropped; short rows leave trailing columns empty.
func record(stream Stream, cells []string) Record {
	rec := make(Record, len(stream.Columns))
	for i, col := range stream.Columns {
		if i < len(cells) {
			rec[col] = cells[i]
		} else {
			rec[col] = ""
		}
	}
	return rec
}
