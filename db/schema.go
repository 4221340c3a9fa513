// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation for saved grid preferences
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_preferences_updated_at ON preferences(updated_at);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
