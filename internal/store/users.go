package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/models"
)

// CreateUser inserts a new user. A duplicate email maps to ErrAlreadyExists.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, plan, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, u.PasswordHash, u.Plan, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrAlreadyExists
		}
		return fmt.Errorf("store: create user: %w", err)
	}
	return nil
}

// GetUser returns a user by id.
func (db *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, plan, created_at, updated_at
		FROM users WHERE id = ?
	`, id))
}

// GetUserByEmail returns a user by (normalised) email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, plan, created_at, updated_at
		FROM users WHERE email = ?
	`, email))
}

// CountAircraft returns the number of aircraft owned by a user (plan limits).
func (db *DB) CountAircraft(ctx context.Context, userID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM aircraft WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count aircraft: %w", err)
	}
	return n, nil
}

func (db *DB) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Plan, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan user: %w", err)
	}
	return &u, nil
}

// CreateSession persists a session keyed by the token hash.
func (db *DB) CreateSession(ctx context.Context, s *models.Session) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO sessions (token_hash, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`, s.TokenHash, s.UserID, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: create session: %w", err)
	}
	return nil
}

// GetSession returns the session for a token hash.
func (db *DB) GetSession(ctx context.Context, tokenHash string) (*models.Session, error) {
	var s models.Session
	err := db.conn.QueryRowContext(ctx, `
		SELECT token_hash, user_id, expires_at, created_at
		FROM sessions WHERE token_hash = ?
	`, tokenHash).Scan(&s.TokenHash, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get session: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a session (logout).
func (db *DB) DeleteSession(ctx context.Context, tokenHash string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("store: delete session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry and returns how
// many were deleted.
func (db *DB) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("store: purge sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	// Fallback for wrapped driver errors.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
