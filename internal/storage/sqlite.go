package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteKV keeps documents in a single records table.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path. Use ":memory:" for an
// in-memory database.
func OpenSQLite(path string) (*SQLiteKV, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	if path == ":memory:" {
		dsn = path
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	kv := &SQLiteKV{db: db}
	if err := kv.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return kv, nil
}

func (s *SQLiteKV) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	return err
}

func (s *SQLiteKV) Get(key string) ([]byte, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(v), nil
}

func (s *SQLiteKV) Put(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Quarantine(key string) (string, error) {
	backupKey := key + ".corrupt"
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO records (key, value, updated_at)
		SELECT ?, value, updated_at FROM records WHERE key = ?`, backupKey, key); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", key, err)
	}
	if _, err := tx.Exec(`DELETE FROM records WHERE key = ?`, key); err != nil {
		return "", fmt.Errorf("failed to remove %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return backupKey, nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
