package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/devcatalyst07/fitplan/internal/calendar"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS projects (
    name          TEXT PRIMARY KEY,
    direction     TEXT NOT NULL,
    anchor_date   TEXT NOT NULL,
    target_end    TEXT NOT NULL DEFAULT '',
    project_start TEXT NOT NULL,
    project_end   TEXT NOT NULL,
    at_risk       INTEGER NOT NULL DEFAULT 0,
    risk_reason   TEXT NOT NULL DEFAULT '',
    computed_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS task_schedules (
    project       TEXT NOT NULL,
    task_id       TEXT NOT NULL,
    title         TEXT NOT NULL DEFAULT '',
    trade         TEXT NOT NULL DEFAULT '',
    start_date    TEXT NOT NULL,
    end_date      TEXT NOT NULL,
    duration_days INTEGER NOT NULL,
    critical      INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (project, task_id)
);

CREATE TABLE IF NOT EXISTS schedule_history (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    project       TEXT NOT NULL,
    project_start TEXT NOT NULL,
    project_end   TEXT NOT NULL,
    at_risk       INTEGER NOT NULL,
    risk_reason   TEXT NOT NULL DEFAULT '',
    computed_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements Store using a local SQLite database in WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables WAL
// mode and busy timeout, and creates the schema tables if they do not exist.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled connections
	// that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save writes the whole schedule in one transaction: upsert the project
// row, replace the task rows, append a history record. A failed write
// leaves the previously stored schedule untouched.
func (s *SQLiteStore) Save(ctx context.Context, sched *StoredSchedule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsert = `
		INSERT INTO projects (name, direction, anchor_date, target_end,
			project_start, project_end, at_risk, risk_reason, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			direction     = excluded.direction,
			anchor_date   = excluded.anchor_date,
			target_end    = excluded.target_end,
			project_start = excluded.project_start,
			project_end   = excluded.project_end,
			at_risk       = excluded.at_risk,
			risk_reason   = excluded.risk_reason,
			computed_at   = CURRENT_TIMESTAMP`
	targetEnd := ""
	if !sched.TargetEnd.IsZero() {
		targetEnd = calendar.Format(sched.TargetEnd)
	}
	if _, err := tx.ExecContext(ctx, upsert,
		sched.Project, sched.Direction, calendar.Format(sched.AnchorDate), targetEnd,
		calendar.Format(sched.ProjectStart), calendar.Format(sched.ProjectEnd),
		boolToInt(sched.AtRisk), sched.RiskReason); err != nil {
		return fmt.Errorf("store: upsert project %q: %w", sched.Project, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM task_schedules WHERE project = ?", sched.Project); err != nil {
		return fmt.Errorf("store: clear task rows for %q: %w", sched.Project, err)
	}

	const insertTask = `
		INSERT INTO task_schedules (project, task_id, title, trade, start_date, end_date, duration_days, critical)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, insertTask)
	if err != nil {
		return fmt.Errorf("store: prepare task insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range sched.Tasks {
		if _, err := stmt.ExecContext(ctx, sched.Project, t.TaskID, t.Title, t.Trade,
			calendar.Format(t.Start), calendar.Format(t.End), t.DurationDays, boolToInt(t.Critical)); err != nil {
			return fmt.Errorf("store: insert task %q: %w", t.TaskID, err)
		}
	}

	const insertHistory = `
		INSERT INTO schedule_history (project, project_start, project_end, at_risk, risk_reason)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertHistory, sched.Project,
		calendar.Format(sched.ProjectStart), calendar.Format(sched.ProjectEnd),
		boolToInt(sched.AtRisk), sched.RiskReason); err != nil {
		return fmt.Errorf("store: append history for %q: %w", sched.Project, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit schedule for %q: %w", sched.Project, err)
	}
	return nil
}

// Load returns the stored schedule for a project, or ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, project string) (*StoredSchedule, error) {
	const q = `SELECT direction, anchor_date, target_end, project_start, project_end,
		at_risk, risk_reason, computed_at FROM projects WHERE name = ?`

	sched := StoredSchedule{Project: project}
	var anchor, target, pstart, pend, computed string
	var atRisk int
	err := s.db.QueryRowContext(ctx, q, project).Scan(&sched.Direction, &anchor, &target,
		&pstart, &pend, &atRisk, &sched.RiskReason, &computed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, project)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load project %q: %w", project, err)
	}

	if sched.AnchorDate, err = calendar.Parse(anchor); err != nil {
		return nil, fmt.Errorf("store: parse anchor for %q: %w", project, err)
	}
	if target != "" {
		if sched.TargetEnd, err = calendar.Parse(target); err != nil {
			return nil, fmt.Errorf("store: parse target for %q: %w", project, err)
		}
	}
	if sched.ProjectStart, err = calendar.Parse(pstart); err != nil {
		return nil, fmt.Errorf("store: parse project start for %q: %w", project, err)
	}
	if sched.ProjectEnd, err = calendar.Parse(pend); err != nil {
		return nil, fmt.Errorf("store: parse project end for %q: %w", project, err)
	}
	if sched.ComputedAt, err = parseTimestamp(computed); err != nil {
		return nil, fmt.Errorf("store: parse computed_at for %q: %w", project, err)
	}
	sched.AtRisk = atRisk != 0

	const tasksQ = `SELECT task_id, title, trade, start_date, end_date, duration_days, critical
		FROM task_schedules WHERE project = ? ORDER BY start_date, task_id`
	rows, err := s.db.QueryContext(ctx, tasksQ, project)
	if err != nil {
		return nil, fmt.Errorf("store: query tasks for %q: %w", project, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t StoredTask
		var start, end string
		var critical int
		if err := rows.Scan(&t.TaskID, &t.Title, &t.Trade, &start, &end, &t.DurationDays, &critical); err != nil {
			return nil, fmt.Errorf("store: scan task row: %w", err)
		}
		if t.Start, err = calendar.Parse(start); err != nil {
			return nil, fmt.Errorf("store: parse start for task %q: %w", t.TaskID, err)
		}
		if t.End, err = calendar.Parse(end); err != nil {
			return nil, fmt.Errorf("store: parse end for task %q: %w", t.TaskID, err)
		}
		t.Critical = critical != 0
		sched.Tasks = append(sched.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate tasks for %q: %w", project, err)
	}

	return &sched, nil
}

// History returns up to limit envelope records for a project, newest first.
func (s *SQLiteStore) History(ctx context.Context, project string, limit int) ([]Envelope, error) {
	const q = `SELECT project_start, project_end, at_risk, risk_reason, computed_at
		FROM schedule_history WHERE project = ? ORDER BY id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, project, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query history for %q: %w", project, err)
	}
	defer rows.Close()

	var result []Envelope
	for rows.Next() {
		var e Envelope
		var start, end, computed string
		var atRisk int
		if err := rows.Scan(&start, &end, &atRisk, &e.RiskReason, &computed); err != nil {
			return nil, fmt.Errorf("store: scan history row: %w", err)
		}
		if e.ProjectStart, err = calendar.Parse(start); err != nil {
			return nil, fmt.Errorf("store: parse history start: %w", err)
		}
		if e.ProjectEnd, err = calendar.Parse(end); err != nil {
			return nil, fmt.Errorf("store: parse history end: %w", err)
		}
		if e.ComputedAt, err = parseTimestamp(computed); err != nil {
			return nil, fmt.Errorf("store: parse history timestamp: %w", err)
		}
		e.AtRisk = atRisk != 0
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate history for %q: %w", project, err)
	}
	return result, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timestampFormats lists the formats SQLite drivers may produce for
// CURRENT_TIMESTAMP. modernc.org/sqlite typically returns RFC 3339,
// while canonical SQLite returns the space-separated DateTime format.
var timestampFormats = []string{
	time.RFC3339,
	time.DateTime,
}

// parseTimestamp attempts to parse a SQLite timestamp string using known formats.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
