package store

import (
	"database/sql"
	"time"

	"github.com/nbenitez/fuegos/internal/models"
)

// RecordUnmatched appends to the unmatched-province diagnostics log,
// accumulating occurrence counts across runs.
func (s *Store) RecordUnmatched(province string, occurrences int) error {
	_, err := s.db.Exec(`
		INSERT INTO unmatched_provinces (province, occurrences, last_seen)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(province) DO UPDATE SET
			occurrences = occurrences + excluded.occurrences,
			last_seen = CURRENT_TIMESTAMP
	`, province, occurrences)
	return err
}

// GetUnmatched lists the logged unmatched province strings with counts,
// worst offenders first.
func (s *Store) GetUnmatched() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT province, occurrences FROM unmatched_provinces ORDER BY occurrences DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var province string
		var n int
		if err := rows.Scan(&province, &n); err != nil {
			return nil, err
		}
		out[province] = n
	}
	return out, rows.Err()
}

// InsertRun records one pipeline execution.
func (s *Store) InsertRun(run models.RunSummary) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (started_at, finished_at, fire_year, features_in, features_out, unmatched)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.FireYear, run.FeaturesIn, run.FeaturesOut, run.Unmatched)
	return err
}

// LastRun returns the most recent run, or nil if none have been recorded.
func (s *Store) LastRun() (*models.RunSummary, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, finished_at, fire_year, features_in, features_out, unmatched
		FROM runs ORDER BY id DESC LIMIT 1
	`)

	var run models.RunSummary
	var started, finished time.Time
	err := row.Scan(&run.ID, &started, &finished, &run.FireYear, &run.FeaturesIn, &run.FeaturesOut, &run.Unmatched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.StartedAt = started.UTC()
	run.FinishedAt = finished.UTC()
	return &run, nil
}
