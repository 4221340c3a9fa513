// ABOUTME: Storage backends for the preference blob
// ABOUTME: Badger key-value store, SQLite table and an in-process map
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/dealgrid/db"
)

// ErrNotFound is returned by backends when the key has never been saved.
var ErrNotFound = errors.New("preferences not found")

// Backend stores opaque blobs by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// BadgerBackend keeps preferences in a local BadgerDB directory.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a BadgerDB at dir.
func OpenBadger(dir string) (*BadgerBackend, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create badger directory: %w", err)
	}
	bdb, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerBackend{db: bdb}, nil
}

// OpenBadgerInMemory opens a BadgerDB that never touches disk.
func OpenBadgerInMemory() (*BadgerBackend, error) {
	bdb, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return &BadgerBackend{db: bdb}, nil
}

func (b *BadgerBackend) Get(_ context.Context, key string) ([]byte, error) {
	var result []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return result, err
}

func (b *BadgerBackend) Set(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *BadgerBackend) Delete(_ context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

// SQLiteBackend keeps preferences in the preferences table.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens the database at path (or db.MemoryPath) and wraps it.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	conn, err := db.OpenDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLiteBackend{db: conn}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := db.GetPreference(ctx, s.db, key)
	if errors.Is(err, db.ErrNoPreference) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(p.Value), nil
}

func (s *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	return db.SetPreference(ctx, s.db, key, string(value))
}

func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	return db.DeletePreference(ctx, s.db, key)
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}

// MemoryBackend keeps preferences for the life of the process.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
