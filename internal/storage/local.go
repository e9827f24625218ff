package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Local stores uploaded files on the local filesystem under a single
// directory. Stored names are generated so originals can never collide or
// traverse paths.
type Local struct {
	dir string
}

// NewLocal creates the uploads directory if needed and returns a store.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads directory must not be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &Local{dir: dir}, nil
}

// GenerateName builds a unique on-disk name preserving the original extension.
func (s *Local) GenerateName(field, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixNano(), uuid.NewString()[:8], ext)
}

// Save writes the reader's contents under the given stored name and returns
// the absolute path and byte count.
func (s *Local) Save(name string, reader io.Reader) (string, int64, error) {
	path := filepath.Join(s.dir, filepath.Base(name))

	out, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, reader)
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return path, written, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Local) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the absolute location of a stored file.
func (s *Local) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
