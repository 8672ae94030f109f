package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/models"
)

const shareColumns = `id, aircraft_id, owner_id, mechanic_email, role, status,
	created_at, updated_at`

// CreateShare inserts a new share invitation. A duplicate
// (aircraft, mechanic_email) pair maps to ErrAlreadyExists.
func (db *DB) CreateShare(ctx context.Context, s *models.Share) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO shares (`+shareColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.AircraftID, s.OwnerID, s.MechanicEmail, s.Role, s.Status,
		s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrAlreadyExists
		}
		return fmt.Errorf("store: create share: %w", err)
	}
	return nil
}

// GetShare returns a share by id.
func (db *DB) GetShare(ctx context.Context, id string) (*models.Share, error) {
	var s models.Share
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE id = ?`, id).
		Scan(&s.ID, &s.AircraftID, &s.OwnerID, &s.MechanicEmail, &s.Role,
			&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get share: %w", err)
	}
	return &s, nil
}

// GetShareFor returns the share granting email access to an aircraft, if any.
func (db *DB) GetShareFor(ctx context.Context, aircraftID, email string) (*models.Share, error) {
	var s models.Share
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE aircraft_id = ? AND mechanic_email = ?`,
		aircraftID, email).
		Scan(&s.ID, &s.AircraftID, &s.OwnerID, &s.MechanicEmail, &s.Role,
			&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get share for: %w", err)
	}
	return &s, nil
}

// ListSharesByAircraft returns all shares of one aircraft, newest first.
func (db *DB) ListSharesByAircraft(ctx context.Context, aircraftID string) ([]models.Share, error) {
	return db.listShares(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE aircraft_id = ? ORDER BY created_at DESC`,
		aircraftID)
}

// ListSharesByEmail returns all shares addressed to a mechanic email.
func (db *DB) ListSharesByEmail(ctx context.Context, email string) ([]models.Share, error) {
	return db.listShares(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE mechanic_email = ? ORDER BY created_at DESC`,
		email)
}

// UpdateShareStatus transitions a share (pending -> active on accept).
func (db *DB) UpdateShareStatus(ctx context.Context, id, status string, now time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE shares SET status = ?, updated_at = ? WHERE id = ?`, status, now, id)
	if err != nil {
		return fmt.Errorf("store: update share status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteShare revokes a share.
func (db *DB) DeleteShare(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM shares WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete share: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (db *DB) listShares(ctx context.Context, query string, args ...any) ([]models.Share, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list shares: %w", err)
	}
	defer rows.Close()

	out := []models.Share{}
	for rows.Next() {
		var s models.Share
		if err := rows.Scan(&s.ID, &s.AircraftID, &s.OwnerID, &s.MechanicEmail,
			&s.Role, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan share: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
