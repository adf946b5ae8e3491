// SPDX-License-Identifier: MIT

package policystore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/dynprog/policy"
)

//go:embed schema.sql
var schema string

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("policystore: run not found")

// Run describes one stored policy table.
type Run struct {
	ID       uuid.UUID
	Scenario string
	Horizon  int
	Created  time.Time
}

// Entry is one stored decision. State and Action hold the fmt.Sprint form
// of the original values.
type Entry struct {
	Stage  int
	State  string
	Action string
	Value  float64
}

// Store persists policy tables in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the store at dsn, e.g. "file:runs.db"
// or ":memory:", and applies the schema.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("policystore: dsn is required")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// formatValue keeps ±Inf and the exact bits, which a REAL column would not
// guarantee for infinities.
func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Save stores every written stage of tbl under a new run ID. States and
// actions are stored in their fmt.Sprint form, stage order preserved.
func Save[S comparable, A any](ctx context.Context, s *Store, scenario string, tbl *policy.Table[S, A]) (Run, error) {
	run := Run{
		ID:       uuid.Must(uuid.NewV7()),
		Scenario: scenario,
		Horizon:  tbl.Horizon(),
		Created:  fromMillis(toMillis(s.now())),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, scenario, horizon, created_at) VALUES (?, ?, ?, ?)`,
		run.ID.String(), run.Scenario, run.Horizon, toMillis(run.Created),
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO decisions (run_id, stage, seq, state, action, value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	id := run.ID.String()
	for t, stage := range tbl.Stages() {
		seq := 0
		for x, d := range stage.All() {
			if _, err = stmt.ExecContext(ctx, id, t, seq, fmt.Sprint(x), fmt.Sprint(d.Action), formatValue(d.Value)); err != nil {
				return Run{}, fmt.Errorf("insert decision t=%d state=%v: %w", t, x, err)
			}
			seq++
		}
	}
	if err = tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}

	return run, nil
}

// Run returns the metadata of run id.
//
// Errors: ErrRunNotFound.
func (s *Store) Run(ctx context.Context, id uuid.UUID) (Run, error) {
	var (
		run     Run
		rawID   string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, scenario, horizon, created_at FROM runs WHERE id = ?`, id.String(),
	).Scan(&rawID, &run.Scenario, &run.Horizon, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	if run.ID, err = uuid.Parse(rawID); err != nil {
		return Run{}, fmt.Errorf("parse run id: %w", err)
	}
	run.Created = fromMillis(created)

	return run, nil
}

// Load returns run id and its entries ordered by stage, then by the
// stage's state order.
//
// Errors: ErrRunNotFound.
func (s *Store) Load(ctx context.Context, id uuid.UUID) (Run, []Entry, error) {
	run, err := s.Run(ctx, id)
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT stage, state, action, value FROM decisions WHERE run_id = ? ORDER BY stage, seq`, id.String())
	if err != nil {
		return Run{}, nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e   Entry
			raw string
		)
		if err = rows.Scan(&e.Stage, &e.State, &e.Action, &raw); err != nil {
			return Run{}, nil, fmt.Errorf("scan decision: %w", err)
		}
		if e.Value, err = strconv.ParseFloat(raw, 64); err != nil {
			return Run{}, nil, fmt.Errorf("parse value %q: %w", raw, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("iterate decisions: %w", err)
	}

	return run, entries, nil
}

// List returns every run, oldest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scenario, horizon, created_at FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			rawID   string
			created int64
		)
		if err = rows.Scan(&rawID, &run.Scenario, &run.Horizon, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("parse run id: %w", err)
		}
		run.Created = fromMillis(created)
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Delete removes run id and its entries.
//
// Errors: ErrRunNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM decisions WHERE run_id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete decisions: %w", err)
	}

	return tx.Commit()
}
