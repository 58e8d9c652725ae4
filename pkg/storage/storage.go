package storage

import (
	"context"
	"io"
)

// Store persists uploaded case documents. Keys are relative paths of the
// form "<subfolder>/<filename>".
type Store interface {
	Save(ctx context.Context, key string, body io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
