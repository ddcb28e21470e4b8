// Package dataset persists processed series datasets and serves them over
// HTTP. The sqlite row keeps the full dataset as a JSON payload column
// plus a few queryable fields.
package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roguedex/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Summary is the list-view projection of a stored dataset.
type Summary struct {
	ID           string    `json:"id"`
	Series       string    `json:"series"`
	ProcessedAt  time.Time `json:"processedAt"`
	VillainCount int       `json:"villainCount"`
}

// Save upserts a dataset keyed by series name. A fresh row gets a uuid;
// re-processing a series replaces its payload under the same id.
func (r *Repo) Save(ctx context.Context, ds *models.SeriesDataset) error {
	payload, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal dataset %s: %w", ds.Series, err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO datasets (id, series, processed_at, villain_count, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(series) DO UPDATE SET
		  processed_at = excluded.processed_at,
		  villain_count = excluded.villain_count,
		  payload = excluded.payload
	`, uuid.NewString(), ds.Series, ds.ProcessedAt.UTC().Format(time.RFC3339), ds.Stats.TotalVillains, string(payload))
	if err != nil {
		return fmt.Errorf("upsert dataset %s: %w", ds.Series, err)
	}
	return nil
}

// Get loads a dataset by series name. Missing series returns (nil, nil).
func (r *Repo) Get(ctx context.Context, series string) (*models.SeriesDataset, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT payload FROM datasets WHERE series = ?`, series)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan dataset %s: %w", series, err)
	}

	var ds models.SeriesDataset
	if err := json.Unmarshal([]byte(payload), &ds); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", series, err)
	}
	return &ds, nil
}

// List returns summaries of all stored datasets, most recent first.
func (r *Repo) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, series, processed_at, villain_count
		FROM datasets
		ORDER BY processed_at DESC, series ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			s           Summary
			processedAt string
		)
		if err := rows.Scan(&s.ID, &s.Series, &processedAt, &s.VillainCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, processedAt); err == nil {
			s.ProcessedAt = t
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Delete removes a stored dataset. Deleting a missing series is not an
// error.
func (r *Repo) Delete(ctx context.Context, series string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM datasets WHERE series = ?`, series); err != nil {
		return fmt.Errorf("delete dataset %s: %w", series, err)
	}
	return nil
}
