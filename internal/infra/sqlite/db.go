// Package sqlite provides SQLite-based persistent storage for MemoClarity.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Daily check-ins. One row per calendar day, immutable once written.
		`CREATE TABLE IF NOT EXISTS checkins (
			date       TEXT PRIMARY KEY,
			completed  BOOLEAN NOT NULL DEFAULT 1,
			testimony  TEXT NOT NULL DEFAULT '',
			is_public  BOOLEAN NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,

		// Milestone badges. Keyed by milestone — at most one per milestone ever.
		`CREATE TABLE IF NOT EXISTS badges (
			milestone   INTEGER PRIMARY KEY,
			id          TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			earned_at   INTEGER NOT NULL
		)`,

		// Raffle ticket ledger, trimmed to the newest 100 entries.
		`CREATE TABLE IF NOT EXISTS ticket_ledger (
			id          TEXT PRIMARY KEY,
			type        TEXT NOT NULL,
			date        TEXT NOT NULL,
			tickets     INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			timestamp   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_ts ON ticket_ledger(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_date ON ticket_ledger(date)`,

		// Per-day regular-action flags and regular-ticket count.
		`CREATE TABLE IF NOT EXISTS daily_actions (
			date           TEXT PRIMARY KEY,
			checkin        BOOLEAN NOT NULL DEFAULT 0,
			frequency      BOOLEAN NOT NULL DEFAULT 0,
			game           BOOLEAN NOT NULL DEFAULT 0,
			tickets_earned INTEGER NOT NULL DEFAULT 0
		)`,

		// Archived totals for closed months.
		`CREATE TABLE IF NOT EXISTS monthly_stats (
			month         TEXT PRIMARY KEY,
			total_tickets INTEGER NOT NULL DEFAULT 0,
			actions       INTEGER NOT NULL DEFAULT 0
		)`,

		// Mini-game results, trimmed to the newest 50.
		`CREATE TABLE IF NOT EXISTS game_results (
			id              TEXT PRIMARY KEY,
			game_type       TEXT NOT NULL,
			score           INTEGER NOT NULL,
			level           INTEGER NOT NULL,
			date            TEXT NOT NULL,
			timestamp       INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL DEFAULT 0,
			total_questions INTEGER NOT NULL DEFAULT 0,
			avg_reaction_ms REAL NOT NULL DEFAULT 0,
			time_spent_sec  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_ts ON game_results(timestamp)`,

		// Cognitive assessment results (4 phase scores + total).
		`CREATE TABLE IF NOT EXISTS test_results (
			id       TEXT PRIMARY KEY,
			phase1   INTEGER NOT NULL,
			phase2   INTEGER NOT NULL,
			phase3   INTEGER NOT NULL,
			phase4   INTEGER NOT NULL,
			total    INTEGER NOT NULL,
			taken_at INTEGER NOT NULL
		)`,

		// Key-value store for profile fields, game levels, settings,
		// chat history, and rollover markers. JSON at the boundary.
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
