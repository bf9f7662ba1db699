package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "hireflow/pkg/domain-errors"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"candidate_id": "CAND-20260901-0001"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "CAND-20260901-0001", decodeBody(t, rr)["candidate_id"])
}

func TestWriteErrorValidation(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, dErrors.Validation(map[string]string{"mobile": "Mobile number must be 10 digits."}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "validation_error", body["error"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Mobile number must be 10 digits.", fields["mobile"])
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeForbidden, http.StatusForbidden},
		{dErrors.CodeBadRequest, http.StatusBadRequest},
		{dErrors.CodeUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		WriteError(rr, dErrors.New(tc.code, "boom"))
		assert.Equal(t, tc.status, rr.Code, "code %s", tc.code)
		assert.Equal(t, string(tc.code), decodeBody(t, rr)["error"])
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, dErrors.Wrap(dErrors.CodeUnavailable, "disk exploded at /var/lib/data", errors.New("io error")))

	body := decodeBody(t, rr)
	assert.Equal(t, "storage_unavailable", body["error"])
	assert.NotContains(t, body, "error_description")
}

func TestWriteErrorUncodedDefaultsToInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("plain failure"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "internal_error", body["error"])
	assert.NotContains(t, body, "error_description")
}

func TestWriteIncomplete(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteIncomplete(rr, []string{"Aadhaar Card is missing.", "Verification checkbox must be checked."})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "validation_error", body["error"])
	missing, ok := body["missing"].([]any)
	require.True(t, ok)
	assert.Len(t, missing, 2)
}
