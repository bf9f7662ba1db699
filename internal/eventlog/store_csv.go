package eventlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hireflow/pkg/platform/sentinel"
)

// CSVStore persists each stream as a CSV file with a header row, preserving
// the tabular wire contract of the log. Appends go through O_APPEND with a
// single write per row, guarded by a per-store mutex, so concurrent appends
// cannot interleave partial rows or lose each other's writes.
type CSVStore struct {
	mu  sync.Mutex
	dir string
}

// NewCSVStore creates the backing directory if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create event log dir: %w (%w)", err, sentinel.ErrUnavailable)
	}
	return &CSVStore{dir: dir}, nil
}

func (s *CSVStore) path(stream Stream) string {
	return filepath.Join(s.dir, stream.Name+".csv")
}

// ensure initializes the stream file with its header row when absent.
// Callers must hold the mutex.
func (s *CSVStore) ensure(stream Stream) error {
	path := s.path(stream)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w (%w)", path, err, sentinel.ErrUnavailable)
	}
	return s.writeRow(path, stream.Columns)
}

// writeRow encodes one row and appends it with a single write call.
func (s *CSVStore) writeRow(path string, cells []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cells); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w (%w)", path, err, sentinel.ErrUnavailable)
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append %s: %w (%w)", path, err, sentinel.ErrUnavailable)
	}
	return f.Sync()
}

func (s *CSVStore) Append(_ context.Context, stream Stream, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(stream); err != nil {
		return err
	}
	return s.writeRow(s.path(stream), row(stream, rec))
}

func (s *CSVStore) ReadAll(_ context.Context, stream Stream) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(stream); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(stream))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w (%w)", s.path(stream), err, sentinel.ErrUnavailable)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w (%w)", s.path(stream), err, sentinel.ErrUnavailable)
	}

	out := make([]Record, 0, len(rows))
	for i, cells := range rows {
		if i == 0 {
			// header row
			continue
		}
		out = append(out, record(stream, cells))
	}
	return out, nil
}
