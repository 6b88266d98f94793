// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
//
// The app treats the relational store as an external collaborator: everything above
// this package talks to the repository interfaces, never to SQL directly.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the three repository
// interfaces (schedules, todos, users). The server owns its lifecycle:
// New opens it, Close releases the file lock on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/schedule.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path fails here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is happening — the
	// guest console keeps reading while the owner saves.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the three tables. CREATE TABLE IF NOT EXISTS keeps this
// idempotent — safe to run on every start.
func (db *DB) migrate() error {
	// schedules: one row per (date, time_slot). time_slot is the
	// "HH:MM:SS" key with minute/second fixed at 00. Rows are never
	// deleted, only overwritten.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schedules (
			date        TEXT NOT NULL,
			time_slot   TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'free',
			activity    TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (date, time_slot)
		);
		CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules(date);
	`)
	if err != nil {
		return fmt.Errorf("creating schedules table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id         TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			completed  INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating todos table: %w", err)
	}

	// users: discord_id is UNIQUE — each Discord account maps to exactly
	// one row. Only the allow-listed account ever reaches Upsert, but the
	// schema doesn't assume that.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			discord_id    TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL DEFAULT '',
			name          TEXT NOT NULL DEFAULT '',
			username      TEXT NOT NULL DEFAULT '',
			discriminator TEXT NOT NULL DEFAULT '',
			avatar        TEXT NOT NULL DEFAULT '',
			image         TEXT NOT NULL DEFAULT '',
			role          TEXT NOT NULL DEFAULT '',
			last_login    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}
