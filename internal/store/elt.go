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

// UpsertELT inserts or replaces the ELT record of an aircraft.
func (db *DB) UpsertELT(ctx context.Context, rec *models.ELTRecord) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO elt_records (aircraft_id, user_id, brand, model, serial_number,
			beacon_hex_id, installation_date, last_test_date, battery_expiry_date,
			battery_interval_months, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(aircraft_id) DO UPDATE SET
			brand                   = excluded.brand,
			model                   = excluded.model,
			serial_number           = excluded.serial_number,
			beacon_hex_id           = excluded.beacon_hex_id,
			installation_date       = excluded.installation_date,
			last_test_date          = excluded.last_test_date,
			battery_expiry_date     = excluded.battery_expiry_date,
			battery_interval_months = excluded.battery_interval_months,
			updated_at              = excluded.updated_at
	`, rec.AircraftID, rec.UserID, rec.Brand, rec.Model, rec.SerialNumber,
		rec.BeaconHexID, toNullTime(rec.InstallationDate), toNullTime(rec.LastTestDate),
		toNullTime(rec.BatteryExpiryDate), rec.BatteryIntervalMonths,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: upsert elt: %w", err)
	}
	return nil
}

// GetELT returns the ELT record of an aircraft, or ErrNotFound when the
// aircraft has none configured.
func (db *DB) GetELT(ctx context.Context, aircraftID string) (*models.ELTRecord, error) {
	var (
		rec                       models.ELTRecord
		install, lastTest, expiry sql.NullTime
	)
	err := db.conn.QueryRowContext(ctx, `
		SELECT aircraft_id, user_id, brand, model, serial_number, beacon_hex_id,
			installation_date, last_test_date, battery_expiry_date,
			battery_interval_months, created_at, updated_at
		FROM elt_records WHERE aircraft_id = ?
	`, aircraftID).Scan(&rec.AircraftID, &rec.UserID, &rec.Brand, &rec.Model,
		&rec.SerialNumber, &rec.BeaconHexID, &install, &lastTest, &expiry,
		&rec.BatteryIntervalMonths, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get elt: %w", err)
	}
	rec.InstallationDate = fromNullTime(install)
	rec.LastTestDate = fromNullTime(lastTest)
	rec.BatteryExpiryDate = fromNullTime(expiry)
	return &rec, nil
}

// DeleteELT removes the ELT record of an aircraft.
func (db *DB) DeleteELT(ctx context.Context, aircraftID string) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM elt_records WHERE aircraft_id = ?`, aircraftID)
	if err != nil {
		return fmt.Errorf("store: delete elt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
