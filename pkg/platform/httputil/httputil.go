// Package httputil centralizes JSON response and error envelope writing so
// every handler speaks the same wire format.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "hireflow/pkg/domain-errors"
)

// WriteJSON writes a JSON body with the given status. Encoding failures are
// ignored; the status line has already been committed.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorEnvelope is the JSON error contract shared by all endpoints. Fields is
// present only for validation errors; Missing only for rejected submissions.
type errorEnvelope struct {
	Error       string            `json:"error"`
	Description string            `json:"error_description,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Missing     []string          `json:"missing,omitempty"`
}

// WriteError translates a domain error into an HTTP response. Internal and
// storage errors omit the description so infrastructure details never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	env := errorEnvelope{Error: string(code)}
	switch code {
	case dErrors.CodeInternal, dErrors.CodeUnavailable:
		// status only
	default:
		var de *dErrors.Error
		if errors.As(err, &de) {
			env.Description = de.Message
			env.Fields = de.Fields
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), env)
}

// WriteIncomplete reports a rejected submission: the checklist's missing
// items ride along with the error code.
func WriteIncomplete(w http.ResponseWriter, missing []string) {
	WriteJSON(w, http.StatusBadRequest, errorEnvelope{
		Error:       string(dErrors.CodeValidation),
		Description: "onboarding incomplete",
		Missing:     missing,
	})
}
