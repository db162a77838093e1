// Package storage persists uploaded images. Images are opaque blobs; the
// rest of the application only keeps the stored path.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStore saves an uploaded image and returns its stored path.
type ImageStore interface {
	Save(fh *multipart.FileHeader, subdir string) (string, error)
}

// LocalImageStore writes images under a base directory on local disk.
type LocalImageStore struct {
	baseDir string
}

// NewLocalImageStore creates a LocalImageStore rooted at baseDir
func NewLocalImageStore(baseDir string) *LocalImageStore {
	return &LocalImageStore{baseDir: baseDir}
}

// Save copies the uploaded file under baseDir/subdir with a UUID filename so
// uploads never collide, and returns the path relative to baseDir.
func (s *LocalImageStore) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filepath.Join(subdir, name), nil
}
