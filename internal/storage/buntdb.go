package storage

import (
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

// BuntKV stores documents in a buntdb file. Use ":memory:" for a throwaway store.
type BuntKV struct {
	db *buntdb.DB
}

func OpenBuntDB(path string) (*BuntKV, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening buntdb %s: %w", path, err)
	}
	return &BuntKV{db: db}, nil
}

func (b *BuntKV) Get(key string) ([]byte, error) {
	var v string
	err := b.db.View(func(tx *buntdb.Tx) error {
		var err error
		v, err = tx.Get(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (b *BuntKV) Put(key string, value []byte) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, string(value), nil)
		return err
	})
}

func (b *BuntKV) Quarantine(key string) (string, error) {
	backupKey := key + ".corrupt"
	err := b.db.Update(func(tx *buntdb.Tx) error {
		v, err := tx.Delete(key)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(backupKey, v, nil)
		return err
	})
	if err != nil {
		return "", err
	}
	return backupKey, nil
}

func (b *BuntKV) Close() error {
	return b.db.Close()
}
