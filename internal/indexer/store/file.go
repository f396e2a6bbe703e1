package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BackupFileName is the fixed name of the file backend's backup.
const BackupFileName = "backup.txt"

// FileStore keeps the backup in <dir>/backup.txt.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{path: filepath.Join(dir, BackupFileName)}
}

func (s *FileStore) Name() string {
	return "file:" + s.path
}

func (s *FileStore) Path() string {
	return s.path
}

// Write replaces the backup. It writes a .tmp sibling first and renames it
// over the old file on success.
func (s *FileStore) Write(_ context.Context, data []byte) error {
	tmpPath := s.path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp backup file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing backup file: %w", err)
	}
	if err := f.Sync(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("syncing backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing backup file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming backup file: %w", err)
	}
	return nil
}

func (s *FileStore) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(s.path)
		}
		return nil, fmt.Errorf("reading backup file: %w", err)
	}
	return data, nil
}

// Ping reports whether the backup directory exists.
func (s *FileStore) Ping(context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("backup directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("backup directory %s is not a directory", dir)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
