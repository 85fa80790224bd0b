package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded evidence files. Implementations hand back the
// stored name the File record will reference; how to reach the bytes again
// (static mount, presigned URL) is the caller's business.
type Store interface {
	Save(name string, src io.Reader) (string, error)
}

// DiskStore writes files into a flat directory.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

// Save stores src under a fresh uuid-based name, keeping the original
// extension so browsers can still open the file.
func (s *DiskStore) Save(name string, src io.Reader) (string, error) {
	stored := uuid.NewString() + strings.ToLower(filepath.Ext(name))
	path := filepath.Join(s.Dir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return stored, nil
}
