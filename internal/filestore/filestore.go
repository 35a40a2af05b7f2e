package filestore

import (
	"context"
	"io"
)

// Store persists uploaded report images. The storage key is an opaque base
// name; callers derive public URLs from it and never see server paths.
type Store interface {
	Save(ctx context.Context, prefix, filename string, r io.Reader) (storageKey string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}
