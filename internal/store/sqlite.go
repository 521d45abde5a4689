package store

import (
	"database/sql"
)

// Store wraps the sqlite feature cache. It keeps cleaned features between
// pipeline stages, the unmatched-province diagnostics log, and run history.
// It is a cache, not the source of truth: the published JSON/CSV/spreadsheet
// outputs are the sink.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}
