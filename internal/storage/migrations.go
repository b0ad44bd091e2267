package storage

import (
	"database/sql"
	"fmt"
)

// expectedSchemaVersion is the latest schema version the application
// expects after Migrate completes.
const expectedSchemaVersion = 1

// migration represents one schema migration step.
type migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					source_file TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_runs_created_at ON runs(created_at)`,

				// Amounts are stored as decimal strings so currency values
				// round-trip exactly.
				`CREATE TABLE IF NOT EXISTS run_transactions (
					run_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					date TEXT NOT NULL,
					description TEXT NOT NULL,
					amount TEXT NOT NULL,
					category TEXT NOT NULL,
					confidence TEXT NOT NULL DEFAULT '',
					reasoning TEXT NOT NULL DEFAULT '',
					PRIMARY KEY (run_id, position),
					FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_run_transactions_category ON run_transactions(category)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}
