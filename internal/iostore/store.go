// Package iostore persists per-run write outcomes in a local SQLite
// database. Write mode has no rollback, so the run log is the record a
// human uses to reconcile failed or interrupted batches: every outcome
// carries both QIDs and the failure detail.
package iostore

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    mode        TEXT NOT NULL,
    started_at  TEXT NOT NULL,
    finished_at TEXT,
    written     INTEGER NOT NULL DEFAULT 0,
    failed      INTEGER NOT NULL DEFAULT 0,
    skipped     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS outcomes (
    run_id        TEXT NOT NULL REFERENCES runs(id),
    subject_qid   TEXT NOT NULL,
    object_qid    TEXT NOT NULL,
    reference_url TEXT NOT NULL,
    status        TEXT NOT NULL,
    error         TEXT,
    created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outcomes_run ON outcomes (run_id, status);
`

// Store manages run log persistence backed by SQLite.
type Store struct {
	db    *sql.DB
	path  string
	runID string
}

// Open initializes or connects to the run log database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, OpenError(dbPath, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, OpenError(dbPath, execErr)
		}
	}

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, OpenError(dbPath, err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun registers a new run and returns its ID. mode is "dry-run"
// or "write".
func (s *Store) BeginRun(ctx context.Context, mode string) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, mode, started_at) VALUES (?, ?, ?)`,
		id, mode, now)
	if err != nil {
		return "", WriteError(err)
	}
	s.runID = id
	return id, nil
}

// SaveOutcome records one terminal PendingWrite outcome for the current
// run. Called from the writer's collector goroutine, so appends are
// already serialized.
func (s *Store) SaveOutcome(ctx context.Context, w ortho.PendingWrite) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes
		   (run_id, subject_qid, object_qid, reference_url, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID, w.Subject.QID, w.Object.QID, w.ReferenceURL,
		string(w.Status), nullable(w.Error), now)
	if err != nil {
		return WriteError(err)
	}
	return nil
}

// FinishRun stores the final counters of the current run.
func (s *Store) FinishRun(
	ctx context.Context, written, failed, skipped int,
) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`UPDATE runs
		    SET finished_at = ?, written = ?, failed = ?, skipped = ?
		  WHERE id = ?`,
		now, written, failed, skipped, s.runID)
	if err != nil {
		return WriteError(err)
	}
	return nil
}

// FailedOutcomes returns the failed writes of a run for manual
// reconciliation.
func (s *Store) FailedOutcomes(
	ctx context.Context, runID string,
) ([]ortho.PendingWrite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_qid, object_qid, reference_url, error
		   FROM outcomes
		  WHERE run_id = ? AND status = ?`,
		runID, string(ortho.StatusFailed))
	if err != nil {
		return nil, WriteError(err)
	}
	defer rows.Close()

	var res []ortho.PendingWrite
	for rows.Next() {
		var w ortho.PendingWrite
		var errMsg sql.NullString
		err = rows.Scan(&w.Subject.QID, &w.Object.QID,
			&w.ReferenceURL, &errMsg)
		if err != nil {
			return nil, WriteError(err)
		}
		w.Status = ortho.StatusFailed
		w.Error = errMsg.String
		res = append(res, w)
	}
	return res, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
