// Package upload persists invoice images under the public uploads
// directory.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fraudwatch/internal/model"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Store writes uploaded invoice images to disk. Files are kept after
// scoring so the result page can display them; this system never deletes
// them.
type Store struct {
	dir string
}

// NewStore ensures dir exists and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Allowed reports whether filename carries an accepted image extension,
// case-insensitive.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save persists the upload under a sanitized name and returns the stored
// filename. Existing files are never overwritten; a colliding name gets a
// short unique prefix.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	if !Allowed(filename) {
		return "", &model.InputFormatError{Field: "invoice", Reason: "only jpg, jpeg and png files are accepted"}
	}

	name := sanitizeFilename(filename)
	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		name = uuid.NewString()[:8] + "_" + name
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return name, nil
}

// Path returns the on-disk path of a stored filename.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Dir returns the directory uploads are stored under.
func (s *Store) Dir() string {
	return s.dir
}

// sanitizeFilename strips path components and dangerous characters from a
// client-supplied name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.ReplaceAll(name, " ", "_")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" || name == "." || name == ".." {
		name = "upload"
	}
	return name
}
