package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/campusmarket/backend/internal/application/catalog"
)

// LocalImageStorage writes images into a directory that is served as static files
type LocalImageStorage struct {
	dir     string
	baseURL string
}

// NewLocalImageStorage creates the directory if needed and returns a storage writing into it
func NewLocalImageStorage(dir, baseURL string) (*LocalImageStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalImageStorage{dir: dir, baseURL: baseURL}, nil
}

// Save writes the image to a new file. A partial file is removed when the copy fails.
func (s *LocalImageStorage) Save(_ context.Context, ext string, r io.Reader, size int64) (string, error) {
	name, err := NewImageName(ext)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	src := r
	if size > 0 {
		src = io.LimitReader(r, size)
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return name, nil
}

// Delete removes a stored image file
func (s *LocalImageStorage) Delete(_ context.Context, ref string) error {
	if ref == "" || strings.ContainsAny(ref, `/\`) || ref == "." || ref == ".." {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// URL returns the public path of an image
func (s *LocalImageStorage) URL(ref string) string {
	return joinURL(s.baseURL, ref)
}

// Dir returns the directory images are written to
func (s *LocalImageStorage) Dir() string {
	return s.dir
}

var _ catalogapp.ImageStorage = (*LocalImageStorage)(nil)
