// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite record of generated submissions: when a
// log was built, from which source, its claimed score, and the contacts it
// contained. Runs can be listed, inspected, and exported to YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

const defaultListLimit = 20

// Run describes one generated Cabrillo file.
type Run struct {
	ID           int64           `json:"id" yaml:"id"`
	CreatedAt    time.Time       `json:"created_at" yaml:"created_at"`
	Callsign     string          `json:"callsign" yaml:"callsign"`
	Contest      string          `json:"contest" yaml:"contest"`
	SourcePath   string          `json:"source_path" yaml:"source_path"`
	OutputPath   string          `json:"output_path" yaml:"output_path"`
	Parsed       int             `json:"parsed" yaml:"parsed"`
	Duplicates   int             `json:"duplicates" yaml:"duplicates"`
	ClaimedScore int             `json:"claimed_score" yaml:"claimed_score"`
	Contacts     []types.Contact `json:"contacts,omitempty" yaml:"contacts,omitempty"`
}

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at cfg.DBPath, creating
// its parent directory and schema when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("history database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			callsign TEXT NOT NULL,
			contest TEXT NOT NULL,
			source_path TEXT,
			output_path TEXT,
			parsed INTEGER NOT NULL,
			duplicates INTEGER NOT NULL,
			claimed_score INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			frequency_khz INTEGER NOT NULL,
			mode TEXT NOT NULL,
			time TEXT NOT NULL,
			station_call TEXT NOT NULL,
			sent_report TEXT NOT NULL,
			sent_exchange TEXT NOT NULL,
			contact_call TEXT NOT NULL,
			received_report TEXT NOT NULL,
			received_exchange TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_call ON contacts(contact_call)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores run and its contacts in one transaction and returns the
// new run ID. A zero CreatedAt is set to the current time.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, callsign, contest, source_path, output_path, parsed, duplicates, claimed_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Callsign, run.Contest,
		run.SourcePath, run.OutputPath, run.Parsed, run.Duplicates, run.ClaimedScore,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (run_id, seq, frequency_khz, mode, time, station_call, sent_report,
			sent_exchange, contact_call, received_report, received_exchange)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range run.Contacts {
		_, err := stmt.ExecContext(ctx,
			id, i, c.FrequencyKHz, string(c.Mode), c.Time.UTC().Format(time.RFC3339),
			c.StationCall, c.SentReport, c.SentExchange,
			c.ContactCall, c.ReceivedReport, c.ReceivedExchange,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting contact %s: %w", c.ContactCall, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// List returns the most recent runs first, without their contacts. A
// non-positive limit uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, callsign, contest, source_path, output_path, parsed, duplicates, claimed_score
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
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

// Get returns the run with the given ID and its contacts in log order.
func (s *Store) Get(ctx context.Context, id int64) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, callsign, contest, source_path, output_path, parsed, duplicates, claimed_score
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT frequency_khz, mode, time, station_call, sent_report, sent_exchange,
			contact_call, received_report, received_exchange
		 FROM contacts WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return Run{}, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c       types.Contact
			mode    string
			timeStr string
		)
		if err := rows.Scan(&c.FrequencyKHz, &mode, &timeStr, &c.StationCall, &c.SentReport,
			&c.SentExchange, &c.ContactCall, &c.ReceivedReport, &c.ReceivedExchange); err != nil {
			return Run{}, fmt.Errorf("scanning contact: %w", err)
		}
		c.Mode = types.Mode(mode)
		if c.Time, err = time.Parse(time.RFC3339, timeStr); err != nil {
			return Run{}, fmt.Errorf("parsing contact time %q: %w", timeStr, err)
		}
		run.Contacts = append(run.Contacts, c)
	}
	return run, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run        Run
		createdAt  string
		source     sql.NullString
		outputPath sql.NullString
	)
	err := sc.Scan(&run.ID, &createdAt, &run.Callsign, &run.Contest, &source, &outputPath,
		&run.Parsed, &run.Duplicates, &run.ClaimedScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	run.SourcePath = source.String
	run.OutputPath = outputPath.String
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Run{}, fmt.Errorf("parsing run time %q: %w", createdAt, err)
	}
	return run, nil
}
