// Package sqlite provides SQLite-based persistent storage for QuestLog.
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

// Open creates or opens the SQLite database at dir/questlog.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "questlog.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
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
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			avatar_color  TEXT NOT NULL DEFAULT '',
			bio           TEXT NOT NULL DEFAULT '',
			birth_year    INTEGER,
			xp            INTEGER NOT NULL DEFAULT 0,
			chest_credits INTEGER NOT NULL DEFAULT 0,
			is_public     BOOLEAN NOT NULL DEFAULT 1,
			created_at    INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS activities (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id            INTEGER NOT NULL REFERENCES users(id),
			activity_name      TEXT NOT NULL,
			category           TEXT NOT NULL,
			duration_minutes   INTEGER NOT NULL,
			timestamp          INTEGER NOT NULL,
			productivity_score REAL NOT NULL,
			is_focus_session   BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_user_ts ON activities(user_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_ts ON activities(timestamp)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      INTEGER NOT NULL REFERENCES users(id),
			category     TEXT NOT NULL DEFAULT '',
			title        TEXT NOT NULL,
			target_hours REAL NOT NULL,
			timeframe    TEXT NOT NULL,
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,

		// One row per (user, badge); re-earning is a no-op.
		`CREATE TABLE IF NOT EXISTS user_badges (
			user_id   INTEGER NOT NULL REFERENCES users(id),
			badge     TEXT NOT NULL,
			earned_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, badge)
		)`,

		`CREATE TABLE IF NOT EXISTS friendships (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			requester_id INTEGER NOT NULL REFERENCES users(id),
			receiver_id  INTEGER NOT NULL REFERENCES users(id),
			status       TEXT NOT NULL DEFAULT 'pending',
			created_at   INTEGER NOT NULL,
			UNIQUE (requester_id, receiver_id)
		)`,

		`CREATE TABLE IF NOT EXISTS challenges (
			id          TEXT PRIMARY KEY,
			creator_id  INTEGER NOT NULL REFERENCES users(id),
			opponent_id INTEGER NOT NULL REFERENCES users(id),
			category    TEXT NOT NULL DEFAULT '',
			timeframe   TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'pending',
			winner_id   INTEGER,
			created_at  INTEGER NOT NULL,
			starts_at   INTEGER NOT NULL DEFAULT 0,
			ends_at     INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_status ON challenges(status)`,

		`CREATE TABLE IF NOT EXISTS user_items (
			user_id   INTEGER NOT NULL REFERENCES users(id),
			item_id   TEXT NOT NULL,
			count     INTEGER NOT NULL DEFAULT 0,
			is_broken BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, item_id)
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
