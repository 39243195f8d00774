package blobstore

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore keeps blobs as files under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fs.dir, name)
}

func (fs *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(fs.path(name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

func (fs *FileStore) Put(ctx context.Context, name string, data []byte) error {
	return os.WriteFile(fs.path(name), data, 0644)
}

func (fs *FileStore) Close() error {
	return nil
}
