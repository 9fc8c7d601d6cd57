package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileKV keeps one JSON document per key in a directory.
type FileKV struct {
	dir string
}

// NewFileKV returns a FileKV rooted at dir. The directory is created on first write.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileKV) Get(key string) ([]byte, error) {
	path := f.path(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	return data, nil
}

// Put atomically replaces the document for key.
func (f *FileKV) Put(key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	path := f.path(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

func (f *FileKV) Quarantine(key string) (string, error) {
	path := f.path(key)
	backupPath := path + ".corrupt"
	if err := os.Rename(path, backupPath); err != nil {
		return "", fmt.Errorf("storage error backing up %s: %w", path, err)
	}
	return backupPath, nil
}

func (f *FileKV) Close() error { return nil }
