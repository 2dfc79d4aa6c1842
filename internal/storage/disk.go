package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes uploaded files to a flat directory keyed by the
// client-supplied original filename. Later uploads with the same name
// silently overwrite earlier ones; there is no collision handling and
// no content inspection.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the file contents under name and returns the stored filename.
// The name is reduced to its base component so uploads cannot escape the
// upload directory.
func (s *DiskStore) Save(name string, src io.Reader) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename")
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Dir returns the directory files are stored in.
func (s *DiskStore) Dir() string {
	return s.dir
}
