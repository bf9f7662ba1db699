package eventlog

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVStore_InitializesMissingFileWithHeader(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewCSVStore(dir)
	require.NoError(t, err)

	rows, err := store.ReadAll(ctx, Candidates)
	require.NoError(t, err)
	assert.Empty(t, rows)

	f, err := os.Open(filepath.Join(dir, "candidates.csv"))
	require.NoError(t, err)
	defer f.Close()
	raw, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, Candidates.Columns, raw[0], "header row must match the wire schema in order")
}

func TestCSVStore_AppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewCSVStore(t.TempDir())
	require.NoError(t, err)

	rec := Record{
		"candidate_id": "CAND-20260901-0001",
		"event_type":   "DOC_UPLOADED",
		"doc_key":      "aadhaar_card",
		"metadata":     `{"hasPg":true}`,
	}
	require.NoError(t, store.Append(ctx, Onboarding, rec))
	require.NoError(t, store.Append(ctx, Onboarding, Record{
		"candidate_id": "CAND-20260901-0001",
		"event_type":   "ONBOARDING_SUBMITTED",
	}))

	rows, err := store.ReadAll(ctx, Onboarding)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "aadhaar_card", rows[0]["doc_key"])
	assert.Equal(t, `{"hasPg":true}`, rows[0]["metadata"])
	assert.Equal(t, "", rows[0]["uploaded_by"], "absent optional fields persist as empty strings")
	assert.Equal(t, "ONBOARDING_SUBMITTED", rows[1]["event_type"])
}

func TestCSVStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewCSVStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, Candidates, Record{"candidate_id": "CAND-20260901-0001"}))

	reopened, err := NewCSVStore(dir)
	require.NoError(t, err)
	rows, err := reopened.ReadAll(ctx, Candidates)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CAND-20260901-0001", rows[0]["candidate_id"])
}
