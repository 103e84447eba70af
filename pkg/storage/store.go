package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ObjectStore is the boundary to wherever uploaded scan images live.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader) error
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, bucket, key string) error
}

// fsStore keeps objects on the local filesystem under baseDir/bucket/key.
type fsStore struct {
	baseDir string
}

// NewFilesystemStore returns an ObjectStore backed by the local filesystem.
func NewFilesystemStore(baseDir string) ObjectStore {
	return &fsStore{baseDir: baseDir}
}

func (s *fsStore) path(bucket, key string) string {
	return filepath.Join(s.baseDir, bucket, filepath.FromSlash(key))
}

func (s *fsStore) Put(ctx context.Context, bucket, key string, body io.Reader) error {
	path := s.path(bucket, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

func (s *fsStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(bucket, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return f, nil
}

func (s *fsStore) Delete(ctx context.Context, bucket, key string) error {
	return os.Remove(s.path(bucket, key))
}

// ScanKey builds the object key for an uploaded scan image.
func ScanKey(companyID, scanID, fileName string) string {
	return fmt.Sprintf("companies/%s/scans/%s/%s", companyID, scanID, fileName)
}
