package blobstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("blob not found")
)

// Store reads and writes named blobs.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Close() error
}
