// Package candidate tracks applicants through the hiring pipeline. State is
// an append-only stream of CANDIDATE_CREATED events; the latest event per
// candidate_id is the authoritative snapshot.
package candidate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hireflow/internal/eventlog"
)

const EventCreated = "CANDIDATE_CREATED"

// Allowed enum values for candidate intake. These are part of the intake
// contract with the form layer; the server re-validates regardless of what
// the browser enforced.
var (
	Positions         = []string{"Kitchen Staff", "Helper", "Delivery Boy", "Other"}
	Sources           = []string{"Referral", "Walk-in", "Portal", "Recruiter"}
	InterviewStatuses = []string{"Attended", "Not Attended", "Rescheduled"}
	SelectionStatuses = []string{"Selected", "Rejected", "On Hold"}
	FinalStatuses     = []string{"Joined", "Dropped", "Not Responding"}
)

const SelectionSelected = "Selected"

// Snapshot is the current view of one candidate, folded latest-wins from the
// stream. JSON field names match the stream columns.
type Snapshot struct {
	CandidateID        string `json:"candidate_id"`
	CreatedAt          string `json:"created_at"`
	Name               string `json:"candidate_name"`
	Mobile             string `json:"mobile"`
	Email              string `json:"email"`
	Position           string `json:"position"`
	Source             string `json:"source"`
	InterviewScheduled string `json:"interview_scheduled"`
	InterviewDate      string `json:"interview_date"`
	InterviewStatus    string `json:"interview_status"`
	SelectionStatus    string `json:"selection_status"`
	OfferReleased      string `json:"offer_released"`
	JoiningDate        string `json:"joining_date"`
	FinalStatus        string `json:"final_status"`
	Remarks            string `json:"remarks"`
}

// Selected reports whether onboarding actions are allowed for this candidate.
func (s Snapshot) Selected() bool { return s.SelectionStatus == SelectionSelected }

// CreateRequest is the intake payload for a new candidate.
type CreateRequest struct {
	Name               string `json:"candidate_name"`
	Mobile             string `json:"mobile"`
	Email              string `json:"email"`
	Position           string `json:"position"`
	Source             string `json:"source"`
	InterviewScheduled string `json:"interview_scheduled"`
	InterviewDate      string `json:"interview_date"`
	InterviewStatus    string `json:"interview_status"`
	SelectionStatus    string `json:"selection_status"`
	OfferReleased      string `json:"offer_released"`
	JoiningDate        string `json:"joining_date"`
	FinalStatus        string `json:"final_status"`
	Remarks            string `json:"remarks"`
}

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// Validate checks the intake payload and returns a field → message map along
// with the cleaned request. Normalization happens here, before persistence:
// interview_date is cleared unless an interview is scheduled, joining_date is
// cleared unless the candidate is Selected.
func Validate(req CreateRequest) (CreateRequest, map[string]string) {
	errs := map[string]string{}

	clean := req
	clean.Name = strings.TrimSpace(req.Name)
	clean.Mobile = strings.TrimSpace(req.Mobile)
	clean.Email = strings.TrimSpace(req.Email)

	if len(clean.Name) < 3 {
		errs["candidate_name"] = "Candidate name must be at least 3 characters."
	}
	if !mobilePattern.MatchString(clean.Mobile) {
		errs["mobile"] = "Mobile number must be 10 digits."
	}
	if !emailPattern.MatchString(clean.Email) {
		errs["email"] = "Email must be valid."
	}
	if !contains(Positions, clean.Position) {
		errs["position"] = "Position Applied For is required."
	}
	if !contains(Sources, clean.Source) {
		errs["source"] = "Source is required."
	}
	if clean.InterviewScheduled != "Yes" && clean.InterviewScheduled != "No" {
		errs["interview_scheduled"] = "Interview Scheduled is required."
	}
	if clean.InterviewScheduled == "Yes" && clean.InterviewDate == "" {
		errs["interview_date"] = "Interview Date is required when interview is scheduled."
	}
	if !contains(InterviewStatuses, clean.InterviewStatus) {
		errs["interview_status"] = "Interview Status is required."
	}
	if !contains(SelectionStatuses, clean.SelectionStatus) {
		errs["selection_status"] = "Selection Status is required."
	}
	if clean.OfferReleased != "Yes" && clean.OfferReleased != "No" {
		errs["offer_released"] = "Offer Released is required."
	}
	if clean.SelectionStatus == SelectionSelected && clean.JoiningDate == "" {
		errs["joining_date"] = "Joining Date is required when selection status is Selected."
	}
	if !contains(FinalStatuses, clean.FinalStatus) {
		errs["final_status"] = "Final Status is required."
	}
	if len(clean.Remarks) > 500 {
		errs["remarks"] = "Remarks cannot exceed 500 characters."
	}

	if clean.InterviewScheduled != "Yes" {
		clean.InterviewDate = ""
	}
	if clean.SelectionStatus != SelectionSelected {
		clean.JoiningDate = ""
	}

	return clean, errs
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// FormatID renders the human-readable identifier: CAND-YYYYMMDD-NNNN.
func FormatID(dateID string, seq int) string {
	return fmt.Sprintf("CAND-%s-%04d", dateID, seq)
}

// SequenceOf extracts the numeric sequence from an identifier, or 0 when the
// identifier does not parse.
func SequenceOf(candidateID string) int {
	parts := strings.Split(candidateID, "-")
	if len(parts) != 3 {
		return 0
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return seq
}

func toRecord(id, createdAt string, req CreateRequest) eventlog.Record {
	return eventlog.Record{
		"candidate_id":        id,
		"event_type":          EventCreated,
		"created_at":          createdAt,
		"candidate_name":      req.Name,
		"mobile":              req.Mobile,
		"email":               req.Email,
		"position":            req.Position,
		"source":              req.Source,
		"interview_scheduled": req.InterviewScheduled,
		"interview_date":      req.InterviewDate,
		"interview_status":    req.InterviewStatus,
		"selection_status":    req.SelectionStatus,
		"offer_released":      req.OfferReleased,
		"joining_date":        req.JoiningDate,
		"final_status":        req.FinalStatus,
		"remarks":             req.Remarks,
	}
}

func fromRecord(rec eventlog.Record) Snapshot {
	return Snapshot{
		CandidateID:        rec["candidate_id"],
		CreatedAt:          rec["created_at"],
		Name:               rec["candidate_name"],
		Mobile:             rec["mobile"],
		Email:              rec["email"],
		Position:           rec["position"],
		Source:             rec["source"],
		InterviewScheduled: rec["interview_scheduled"],
		InterviewDate:      rec["interview_date"],
		InterviewStatus:    rec["interview_status"],
		SelectionStatus:    rec["selection_status"],
		OfferReleased:      rec["offer_released"],
		JoiningDate:        rec["joining_date"],
		FinalStatus:        rec["final_status"],
		Remarks:            rec["remarks"],
	}
}
