// Package store provides the SQLite persistence layer for users, sessions,
// aircraft, shares, ELT records, and component settings.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	plan          TEXT NOT NULL DEFAULT 'free',
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	token_hash TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	expires_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

CREATE TABLE IF NOT EXISTS aircraft (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	registration    TEXT NOT NULL,
	aircraft_type   TEXT NOT NULL DEFAULT '',
	manufacturer    TEXT NOT NULL DEFAULT '',
	model           TEXT NOT NULL DEFAULT '',
	year            INTEGER NOT NULL DEFAULT 0,
	serial_number   TEXT NOT NULL DEFAULT '',
	airframe_hours  REAL NOT NULL DEFAULT 0,
	engine_hours    REAL NOT NULL DEFAULT 0,
	propeller_hours REAL NOT NULL DEFAULT 0,
	photo_url       TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL,
	UNIQUE(user_id, registration)
);

CREATE TABLE IF NOT EXISTS shares (
	id             TEXT PRIMARY KEY,
	aircraft_id    TEXT NOT NULL REFERENCES aircraft(id) ON DELETE CASCADE,
	owner_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	mechanic_email TEXT NOT NULL,
	role           TEXT NOT NULL CHECK (role IN ('viewer', 'contributor')),
	status         TEXT NOT NULL CHECK (status IN ('pending', 'active')),
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL,
	UNIQUE(aircraft_id, mechanic_email)
);

CREATE INDEX IF NOT EXISTS idx_shares_email ON shares(mechanic_email);

CREATE TABLE IF NOT EXISTS elt_records (
	aircraft_id             TEXT PRIMARY KEY REFERENCES aircraft(id) ON DELETE CASCADE,
	user_id                 TEXT NOT NULL,
	brand                   TEXT NOT NULL DEFAULT '',
	model                   TEXT NOT NULL DEFAULT '',
	serial_number           TEXT NOT NULL DEFAULT '',
	beacon_hex_id           TEXT NOT NULL DEFAULT '',
	installation_date       DATETIME,
	last_test_date          DATETIME,
	battery_expiry_date     DATETIME,
	battery_interval_months INTEGER NOT NULL DEFAULT 0,
	created_at              DATETIME NOT NULL,
	updated_at              DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS component_settings (
	aircraft_id                         TEXT PRIMARY KEY REFERENCES aircraft(id) ON DELETE CASCADE,
	user_id                             TEXT NOT NULL,
	engine_model                        TEXT NOT NULL DEFAULT '',
	engine_tbo_hours                    REAL NOT NULL DEFAULT 2000,
	engine_hours_since_overhaul         REAL,
	engine_last_overhaul_date           TEXT NOT NULL DEFAULT '',
	propeller_type                      TEXT NOT NULL DEFAULT 'fixed',
	propeller_model                     TEXT NOT NULL DEFAULT '',
	propeller_interval_years            REAL,
	propeller_hours_since_inspection    REAL,
	propeller_last_inspection_date      TEXT NOT NULL DEFAULT '',
	avionics_last_certification_date    TEXT NOT NULL DEFAULT '',
	avionics_cert_interval_months       INTEGER NOT NULL DEFAULT 24,
	magnetos_model                      TEXT NOT NULL DEFAULT '',
	magnetos_interval_hours             REAL NOT NULL DEFAULT 500,
	magnetos_hours_since_inspection     REAL,
	magnetos_last_inspection_date       TEXT NOT NULL DEFAULT '',
	vacuum_pump_model                   TEXT NOT NULL DEFAULT '',
	vacuum_pump_interval_hours          REAL NOT NULL DEFAULT 400,
	vacuum_pump_hours_since_replacement REAL,
	vacuum_pump_last_replacement_date   TEXT NOT NULL DEFAULT '',
	airframe_last_annual_date           TEXT NOT NULL DEFAULT '',
	airframe_hours_since_annual         REAL,
	created_at                          DATETIME NOT NULL,
	updated_at                          DATETIME NOT NULL
);
`

// DB wraps a sql.DB with application-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Ping verifies the database connection (readiness checks).
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
