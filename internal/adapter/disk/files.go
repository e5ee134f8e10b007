// Package disk stores uploaded post images under the public directory.
package disk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore writes one uploaded file per post into a fixed directory,
// renaming it to <field>_<uuid><ext>. The random id replaces the upload
// timestamp the client's previous backend used, which could collide within
// a millisecond.
type FileStore struct {
	dir string
}

// New creates the upload directory if needed and returns a FileStore over it.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save streams the upload to disk and returns the stored basename, which is
// what the post record references.
func (fs *FileStore) Save(field, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s_%s%s", field, uuid.NewString(), ext)

	f, err := os.Create(filepath.Join(fs.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}
