// Package ledger records pipeline runs and per-trial stage outcomes in a
// SQLite database so failed trials can be listed and re-run.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// timeLayout has fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Status is the outcome of one stage of one trial.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ErrUnknownRun is returned when recording against a run that was never begun.
var ErrUnknownRun = errors.New("ledger: unknown run")

// Run is one pipeline invocation.
type Run struct {
	ID        string
	StartedAt time.Time
	Config    string // YAML snapshot of the configuration
}

// Result is one recorded stage outcome.
type Result struct {
	RunID     string
	Subject   string
	Trial     string
	Stage     string
	Status    Status
	Detail    string
	Rows      int
	CreatedAt time.Time
}

// Ledger is the SQLite-backed run ledger.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger database at path. ":memory:" opens a
// private in-memory database.
func Open(ctx context.Context, path string) (*Ledger, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating ledger directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	// One connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db, now: time.Now}
	if err := l.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}

	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema(ctx context.Context) error {
	statements := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			config TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			subject TEXT NOT NULL,
			trial TEXT NOT NULL,
			stage TEXT NOT NULL,
			status TEXT NOT NULL,
			detail TEXT,
			rows INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_status ON results(status)`,
	}

	for _, stmt := range statements {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun registers a new run with a fresh identifier.
func (l *Ledger) BeginRun(ctx context.Context, config string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		StartedAt: l.now().UTC(),
		Config:    config,
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, config) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt.Format(timeLayout), run.Config,
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

// Record stores one stage outcome.
func (l *Ledger) Record(ctx context.Context, r Result) error {
	var exists int
	if err := l.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, r.RunID).Scan(&exists); err != nil {
		return fmt.Errorf("checking run: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownRun, r.RunID)
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = l.now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO results (run_id, subject, trial, stage, status, detail, rows, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Subject, r.Trial, r.Stage, string(r.Status), r.Detail, r.Rows,
		r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// Runs lists all runs, newest first.
func (l *Ledger) Runs(ctx context.Context) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, started_at, config FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			started string
			cfg     sql.NullString
		)
		if err := rows.Scan(&r.ID, &started, &cfg); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing run time: %w", err)
		}
		r.Config = cfg.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Results lists the outcomes of runID in insertion order. An empty runID
// lists every run.
func (l *Ledger) Results(ctx context.Context, runID string) ([]Result, error) {
	return l.query(ctx, runID, "")
}

// Failures lists the failed outcomes of runID, or of every run when
// runID is empty.
func (l *Ledger) Failures(ctx context.Context, runID string) ([]Result, error) {
	return l.query(ctx, runID, StatusFailed)
}

func (l *Ledger) query(ctx context.Context, runID string, status Status) ([]Result, error) {
	q := `SELECT run_id, subject, trial, stage, status, detail, rows, created_at FROM results WHERE 1=1`
	var args []any
	if runID != "" {
		q += ` AND run_id = ?`
		args = append(args, runID)
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY id`

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r       Result
			st      string
			detail  sql.NullString
			count   sql.NullInt64
			created string
		)
		if err := rows.Scan(&r.RunID, &r.Subject, &r.Trial, &r.Stage, &st, &detail, &count, &created); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Status = Status(st)
		r.Detail = detail.String
		r.Rows = int(count.Int64)
		if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parsing result time: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
