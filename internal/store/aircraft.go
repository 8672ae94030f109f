package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/models"
)

const aircraftColumns = `id, user_id, registration, aircraft_type, manufacturer,
	model, year, serial_number, airframe_hours, engine_hours, propeller_hours,
	photo_url, description, created_at, updated_at`

// CreateAircraft inserts a new aircraft. A duplicate (owner, registration)
// pair maps to ErrAlreadyExists.
func (db *DB) CreateAircraft(ctx context.Context, a *models.Aircraft) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO aircraft (`+aircraftColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Registration, a.AircraftType, a.Manufacturer,
		a.Model, a.Year, a.SerialNumber, a.AirframeHours, a.EngineHours,
		a.PropellerHours, a.PhotoURL, a.Description, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrAlreadyExists
		}
		return fmt.Errorf("store: create aircraft: %w", err)
	}
	return nil
}

// GetAircraft returns an aircraft by id regardless of owner. Authorization
// is decided by the service layer.
func (db *DB) GetAircraft(ctx context.Context, id string) (*models.Aircraft, error) {
	return scanAircraft(db.conn.QueryRowContext(ctx,
		`SELECT `+aircraftColumns+` FROM aircraft WHERE id = ?`, id))
}

// ListAircraftByOwner returns a user's aircraft, newest first.
func (db *DB) ListAircraftByOwner(ctx context.Context, userID string) ([]models.Aircraft, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+aircraftColumns+` FROM aircraft WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("store: list aircraft: %w", err)
	}
	defer rows.Close()
	return collectAircraft(rows)
}

// ListAircraftSharedWith returns aircraft the given email holds an active
// share on, newest share first.
func (db *DB) ListAircraftSharedWith(ctx context.Context, email string) ([]models.Aircraft, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT a.id, a.user_id, a.registration, a.aircraft_type, a.manufacturer,
			a.model, a.year, a.serial_number, a.airframe_hours, a.engine_hours,
			a.propeller_hours, a.photo_url, a.description, a.created_at, a.updated_at
		FROM aircraft a
		JOIN shares s ON s.aircraft_id = a.id
		WHERE s.mechanic_email = ? AND s.status = 'active'
		ORDER BY s.created_at DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("store: list shared aircraft: %w", err)
	}
	defer rows.Close()
	return collectAircraft(rows)
}

// UpdateAircraft applies a partial update and bumps updated_at.
// Registration collisions map to ErrAlreadyExists.
func (db *DB) UpdateAircraft(ctx context.Context, a *models.Aircraft) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE aircraft SET
			registration = ?, aircraft_type = ?, manufacturer = ?, model = ?,
			year = ?, serial_number = ?, airframe_hours = ?, engine_hours = ?,
			propeller_hours = ?, photo_url = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, a.Registration, a.AircraftType, a.Manufacturer, a.Model,
		a.Year, a.SerialNumber, a.AirframeHours, a.EngineHours,
		a.PropellerHours, a.PhotoURL, a.Description, a.UpdatedAt, a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrAlreadyExists
		}
		return fmt.Errorf("store: update aircraft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteAircraft removes an aircraft. Shares, ELT records, and component
// settings cascade via foreign keys.
func (db *DB) DeleteAircraft(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM aircraft WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete aircraft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAircraftInto(sc rowScanner, a *models.Aircraft) error {
	return sc.Scan(&a.ID, &a.UserID, &a.Registration, &a.AircraftType,
		&a.Manufacturer, &a.Model, &a.Year, &a.SerialNumber, &a.AirframeHours,
		&a.EngineHours, &a.PropellerHours, &a.PhotoURL, &a.Description,
		&a.CreatedAt, &a.UpdatedAt)
}

func scanAircraft(row *sql.Row) (*models.Aircraft, error) {
	var a models.Aircraft
	err := scanAircraftInto(row, &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan aircraft: %w", err)
	}
	return &a, nil
}

func collectAircraft(rows *sql.Rows) ([]models.Aircraft, error) {
	out := []models.Aircraft{}
	for rows.Next() {
		var a models.Aircraft
		if err := scanAircraftInto(rows, &a); err != nil {
			return nil, fmt.Errorf("store: scan aircraft row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
