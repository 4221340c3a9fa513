// ABOUTME: Preference blob database operations
// ABOUTME: Stores one JSON document per key with its last update time
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNoPreference is returned when no row exists for a key.
var ErrNoPreference = errors.New("preference not found")

// Preference is a stored preference row.
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

func GetPreference(ctx context.Context, db *sql.DB, key string) (*Preference, error) {
	p := &Preference{}
	err := db.QueryRowContext(ctx, `
		SELECT key, value, updated_at FROM preferences WHERE key = ?
	`, key).Scan(&p.Key, &p.Value, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPreference
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func SetPreference(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	return err
}

func DeletePreference(ctx context.Context, db *sql.DB, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key)
	return err
}
