// Package docstore persists uploaded candidate documents on local disk and
// enforces the upload contract: PDF or image only, capped size, and paths
// that cannot escape the storage root.
package docstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hireflow/pkg/platform/sentinel"
	dErrors "hireflow/pkg/domain-errors"
)

// MaxFileSize caps a single document at 5 MiB.
const MaxFileSize = 5 << 20

var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// Store writes documents under a base directory with the layout
// candidates/<candidate_id>/documents/<category>/<timestamp>_<name>.
type Store struct {
	base  string
	clock func() time.Time
}

func New(base string) *Store {
	return &Store{base: base, clock: time.Now}
}

// WithClock overrides time for tests.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// Save streams one upload to disk and returns the stored path relative to the
// base directory. The size limit is enforced while copying, not trusted from
// the declared content length.
func (s *Store) Save(candidateID, category, filename, contentType string, r io.Reader) (string, error) {
	if _, ok := allowedTypes[contentType]; !ok {
		return "", dErrors.New(dErrors.CodeValidation, "Only PDF, JPEG, and PNG files are allowed.")
	}

	rel := filepath.Join(
		"candidates", sanitize(candidateID),
		"documents", sanitize(category),
		fmt.Sprintf("%d_%s", s.clock().UnixMilli(), sanitize(filename)),
	)
	abs := filepath.Join(s.base, rel)
	if !strings.HasPrefix(abs, filepath.Clean(s.base)+string(os.PathSeparator)) {
		return "", dErrors.New(dErrors.CodeBadRequest, "Invalid file path.")
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create document dir: %w (%w)", err, sentinel.ErrUnavailable)
	}
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create document file: %w (%w)", err, sentinel.ErrUnavailable)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write document: %w (%w)", err, sentinel.ErrUnavailable)
	}
	if n > MaxFileSize {
		os.Remove(abs)
		return "", dErrors.New(dErrors.CodeValidation, "File exceeds the 5MB limit.")
	}
	return rel, nil
}

// sanitize strips path separators and parent references so user-supplied
// names cannot traverse out of the base directory.
func sanitize(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "..", "")
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	name = replacer.Replace(name)
	if name == "" || name == "." {
		return "unnamed"
	}
	return name
}
