// Package history persists a log of playback runs so users can review what
// was extracted and played, and when.
package history

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yassine/haptiq/internal/extract"
)

//go:embed schema.sql
var schemaSQL string

// Run outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// maxExcerptLen bounds the stored source text.
const maxExcerptLen = 200

// Run is one recorded playback session.
type Run struct {
	ID            int64
	RunID         string
	CreatedAt     time.Time
	SourceExcerpt string
	Answers       extract.AnswerSet
	StepCount     int
	Outcome       string
	ErrorMessage  string
	Duration      time.Duration
}

// Store manages the SQLite database holding run history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath and
// applies the schema. ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A second pool connection would see a fresh in-memory database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID returns a fresh identifier for a playback run.
func NewRunID() string {
	return uuid.NewString()
}

// RecordRun inserts a completed (or aborted) run. A zero RunID gets one
// assigned; the assigned value is written back.
func (s *Store) RecordRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	answersJSON, err := json.Marshal(run.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO runs (run_id, created_at, source_excerpt, answers, answer_count, step_count, outcome, error_message, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.CreatedAt,
		truncateExcerpt(run.SourceExcerpt),
		string(answersJSON),
		len(run.Answers),
		run.StepCount,
		run.Outcome,
		run.ErrorMessage,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT id, run_id, created_at, source_excerpt, answers, step_count, outcome, error_message, duration_ms
		FROM runs ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun looks up a run by its run id.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, run_id, created_at, source_excerpt, answers, step_count, outcome, error_message, duration_ms
		FROM runs WHERE run_id = ?`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Clear deletes all recorded runs and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	result, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return result.RowsAffected()
}

// scanner abstracts *sql.Row and *sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var answersJSON string
	var durationMs int64

	err := sc.Scan(&run.ID, &run.RunID, &run.CreatedAt, &run.SourceExcerpt,
		&answersJSON, &run.StepCount, &run.Outcome, &run.ErrorMessage, &durationMs)
	if err != nil {
		return Run{}, err
	}

	if err := json.Unmarshal([]byte(answersJSON), &run.Answers); err != nil {
		return Run{}, fmt.Errorf("unmarshal answers for run %s: %w", run.RunID, err)
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	return run, nil
}

func truncateExcerpt(s string) string {
	if len(s) <= maxExcerptLen {
		return s
	}
	return s[:maxExcerptLen]
}
