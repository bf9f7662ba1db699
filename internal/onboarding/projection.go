package onboarding

import "hireflow/internal/onboarding/checklist"

// Upload is one entry in the document ledger.
type Upload struct {
	DocKey           string `json:"doc_key"`
	Category         string `json:"category"`
	OriginalFilename string `json:"original_filename"`
	StoredPath       string `json:"stored_path"`
	UploadedAt       string `json:"uploaded_at"`
	UploadedBy       string `json:"uploaded_by"`
	Required         bool   `json:"required"`
	Verified         bool   `json:"verified"`
}

// State is the materialized onboarding view for one candidate.
type State struct {
	Category        checklist.Category        `json:"category"`
	Flags           checklist.Flags           `json:"flags"`
	SelfDeclaration checklist.SelfDeclaration `json:"selfDeclaration"`
	HasDeclaration  bool                      `json:"hasDeclaration"`
	Uploads         []Upload                  `json:"uploads"`
	Submitted       bool                      `json:"submitted"`
}

// UploadCounts tallies the ledger per doc_key for the checklist engine.
// Duplicate uploads all count.
func (s State) UploadCounts() checklist.Uploads {
	counts := make(checklist.Uploads, len(s.Uploads))
	for _, u := range s.Uploads {
		if u.DocKey == "" {
			continue
		}
		counts[u.DocKey]++
	}
	return counts
}

// Project folds ordered events into state. The fold is pure and
// deterministic: replaying the same prefix always yields the same state.
// Category and declaration are last-write-wins; uploads accumulate.
func Project(events []Event) State {
	state := State{Uploads: []Upload{}}
	for _, event := range events {
		switch e := event.(type) {
		case CategorySelected:
			state.Category = e.Category
			state.Flags = e.Flags
		case SelfDeclared:
			state.SelfDeclaration = e.Fields
			state.HasDeclaration = true
		case DocUploaded:
			state.Uploads = append(state.Uploads, Upload{
				DocKey:           e.DocKey,
				Category:         e.Category,
				OriginalFilename: e.OriginalFilename,
				StoredPath:       e.StoredPath,
				UploadedAt:       e.UploadedAt,
				UploadedBy:       e.UploadedBy,
				Required:         e.Required,
				Verified:         e.Verified,
			})
		case Submitted:
			state.Submitted = true
		}
	}
	return state
}

// Checklist evaluates the rule engine against the projected state.
func (s State) Checklist() checklist.Result {
	return checklist.Evaluate(s.Category, s.Flags, s.UploadCounts(), s.SelfDeclaration)
}
