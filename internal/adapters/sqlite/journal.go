package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rollcall/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Journal implements ports.BatchJournal on SQLite. It holds at most one
// batch: recording a new batch replaces the previous one, matching the
// one-operation undo window.
type Journal struct {
	db     *sql.DB
	dbPath string
}

// Ensure Journal implements BatchJournal
var _ ports.BatchJournal = (*Journal)(nil)

// NewJournal creates a new SQLite journal
func NewJournal() *Journal {
	return &Journal{}
}

// Open initializes the journal database at the given path
func (j *Journal) Open(path string) error {
	j.dbPath = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	j.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			dir TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS batch_entries (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			source_path TEXT NOT NULL,
			target_path TEXT NOT NULL,
			PRIMARY KEY (batch_id, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		INSERT INTO meta (key, value) VALUES ('schema_version', '` + schemaVersion + `')
			ON CONFLICT(key) DO UPDATE SET value = excluded.value;
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record stores a batch, replacing any previously stored one.
func (j *Journal) Record(batch ports.Batch) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM batch_entries"); err != nil {
		return fmt.Errorf("failed to clear previous entries: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM batches"); err != nil {
		return fmt.Errorf("failed to clear previous batch: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO batches (id, dir, applied_at) VALUES (?, ?, ?)",
		batch.ID, batch.Dir, batch.AppliedAt.Unix(),
	); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO batch_entries (batch_id, position, source_path, target_path) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range batch.Entries {
		if _, err := stmt.Exec(batch.ID, i, e.SourcePath, e.TargetPath); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Last returns the most recently recorded batch, or nil when empty.
func (j *Journal) Last() (*ports.Batch, error) {
	var (
		batch   ports.Batch
		applied int64
	)
	err := j.db.QueryRow("SELECT id, dir, applied_at FROM batches LIMIT 1").
		Scan(&batch.ID, &batch.Dir, &applied)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}
	batch.AppliedAt = time.Unix(applied, 0)

	rows, err := j.db.Query(
		"SELECT source_path, target_path FROM batch_entries WHERE batch_id = ? ORDER BY position",
		batch.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e ports.BatchEntry
		if err := rows.Scan(&e.SourcePath, &e.TargetPath); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		batch.Entries = append(batch.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return &batch, nil
}

// Clear removes the stored batch.
func (j *Journal) Clear() error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM batch_entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM batches"); err != nil {
		return fmt.Errorf("failed to clear batch: %w", err)
	}
	return tx.Commit()
}
