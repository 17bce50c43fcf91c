package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/usersdb/usersdb/config"
)

// ObjectStorage is the bucket-scoped object store exports are written to.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Bucket() string
}

// ErrDisabled is returned by NewBackend when no store is configured.
var ErrDisabled = errors.New("storage: no backend configured")

// NewBackend constructs the store named by cfg.Backend and makes sure its
// bucket exists.
func NewBackend(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.Backend {
	case "":
		return nil, ErrDisabled
	case "minio":
		backend, err = NewMinioClient(cfg.Minio)
	case "gcs":
		backend, err = NewGCSClient(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket %s: %w", backend.Bucket(), err)
	}
	return backend, nil
}
