package database

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
  id TEXT PRIMARY KEY,
  series TEXT NOT NULL UNIQUE,
  processed_at TEXT NOT NULL,
  villain_count INTEGER NOT NULL,
  payload TEXT NOT NULL -- full SeriesDataset as JSON
);

CREATE INDEX IF NOT EXISTS idx_datasets_processed_at ON datasets (processed_at);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
