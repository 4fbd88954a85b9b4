package quotes

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage reads and writes the serialized collection
type Storage interface {
	// Read returns the stored bytes; a missing file yields an error
	// matching fs.ErrNotExist.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored bytes atomically.
	Write(ctx context.Context, data []byte) error
}

// FilePerm keeps the quote file readable by the widget process
const FilePerm os.FileMode = 0o644

// FileStorage persists the collection as a single file in the shared
// app group directory
type FileStorage struct {
	path string
}

// NewFileStorage creates a storage backed by the file at path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the file location
func (s *FileStorage) Path() string {
	return s.path
}

// Read implements Storage
func (s *FileStorage) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

// Write implements Storage. Data goes to a temporary file in the same
// directory which is synced and then renamed over the target, so readers
// see either the old or the new complete file.
func (s *FileStorage) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := s.path + ".tmp." + randomSuffix()
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePerm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// IsNotExist reports whether err means nothing has been saved yet
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func randomSuffix() string {
	var b [8]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
