// Package localfs keeps uploaded PDFs and generated files under one
// directory.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// Save writes data to a temporary file and renames it into place, so readers
// never observe a partial upload.
func (s *Storage) Save(_ context.Context, key string, data io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.basePath, ".upload-*")
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

// Path is the on-disk location of key. Invalid keys map to a path that
// cannot exist.
func (s *Storage) Path(key string) string {
	path, err := s.resolve(key)
	if err != nil {
		return filepath.Join(s.basePath, ".invalid")
	}
	return path
}

func (s *Storage) resolve(key string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + key))
	if key == "" || clean != key || strings.HasPrefix(clean, ".") {
		return "", domain.WrapError(domain.ErrInvalidInput, "storage", fmt.Errorf("invalid key %q", key))
	}
	return filepath.Join(s.basePath, clean), nil
}
