package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploads under a base directory on local disk. It is the
// default backend; S3 is opt-in via configuration.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Save(ctx context.Context, key string, body io.Reader) (string, error) {
	full := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create subfolder: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	return full, nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, filepath.FromSlash(key)))
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
}
