package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DiskImageStorage writes uploads under Dir and returns the stored file name
type DiskImageStorage struct {
	Dir string
	Now func() time.Time
}

// NewDiskImageStorage creates dir when it does not exist yet
func NewDiskImageStorage(dir string) (*DiskImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskImageStorage{Dir: dir, Now: time.Now}, nil
}

func (s *DiskImageStorage) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	stored := StoredName(name, s.Now())
	f, err := os.OpenFile(filepath.Join(s.Dir, stored), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return stored, nil
}
