// Package storage persists the working week, the saved-week history and the
// project catalogue on top of a small key-value seam with file, buntdb and
// sqlite backends.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexflint/go-filemutex"
)

// Record keys.
const (
	WorkingWeekKey = "working-week"
	HistoryKey     = "history"
	ProjectsKey    = "projects"
)

// Backend drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverBuntDB = "buntdb"
	DriverSQLite = "sqlite"
)

// ErrNotFound is returned by a KV when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KV is the persistence seam. Values are opaque JSON documents.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// Quarantine moves an unreadable value aside so the key reads as absent.
	// It returns where the value went.
	Quarantine(key string) (string, error)
	Close() error
}

// BaseDir returns the root data directory (~/.tsheet). TSHEET_HOME overrides it.
func BaseDir() (string, error) {
	if dir := os.Getenv("TSHEET_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tsheet"), nil
}

// OpenKV opens the backend named by driver inside dir.
func OpenKV(driver, dir string) (KV, error) {
	switch driver {
	case "", DriverFile:
		return NewFileKV(dir), nil
	case DriverBuntDB:
		return OpenBuntDB(filepath.Join(dir, "tsheet.db"))
	case DriverSQLite:
		return OpenSQLite(filepath.Join(dir, "tsheet.sqlite"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q (want %s, %s or %s)", driver, DriverFile, DriverBuntDB, DriverSQLite)
	}
}

// Open creates dir if needed, opens the backend and guards writers with a
// lock file so concurrent tsheet processes do not interleave updates.
func Open(driver, dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating %s: %w", dir, err)
	}
	kv, err := OpenKV(driver, dir)
	if err != nil {
		return nil, fmt.Errorf("storage error opening %s backend: %w", driver, err)
	}
	mux, err := filemutex.New(filepath.Join(dir, "tsheet.lock"))
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("storage error creating lock file: %w", err)
	}
	return New(kv, WithLogger(logger), WithFileLock(mux)), nil
}
