package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/models"
)

// UpsertComponentSettings inserts or replaces the component settings of an
// aircraft.
func (db *DB) UpsertComponentSettings(ctx context.Context, cs *models.ComponentSettings) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO component_settings (aircraft_id, user_id,
			engine_model, engine_tbo_hours, engine_hours_since_overhaul, engine_last_overhaul_date,
			propeller_type, propeller_model, propeller_interval_years,
			propeller_hours_since_inspection, propeller_last_inspection_date,
			avionics_last_certification_date, avionics_cert_interval_months,
			magnetos_model, magnetos_interval_hours, magnetos_hours_since_inspection,
			magnetos_last_inspection_date,
			vacuum_pump_model, vacuum_pump_interval_hours, vacuum_pump_hours_since_replacement,
			vacuum_pump_last_replacement_date,
			airframe_last_annual_date, airframe_hours_since_annual,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(aircraft_id) DO UPDATE SET
			user_id                             = excluded.user_id,
			engine_model                        = excluded.engine_model,
			engine_tbo_hours                    = excluded.engine_tbo_hours,
			engine_hours_since_overhaul         = excluded.engine_hours_since_overhaul,
			engine_last_overhaul_date           = excluded.engine_last_overhaul_date,
			propeller_type                      = excluded.propeller_type,
			propeller_model                     = excluded.propeller_model,
			propeller_interval_years            = excluded.propeller_interval_years,
			propeller_hours_since_inspection    = excluded.propeller_hours_since_inspection,
			propeller_last_inspection_date      = excluded.propeller_last_inspection_date,
			avionics_last_certification_date    = excluded.avionics_last_certification_date,
			avionics_cert_interval_months       = excluded.avionics_cert_interval_months,
			magnetos_model                      = excluded.magnetos_model,
			magnetos_interval_hours             = excluded.magnetos_interval_hours,
			magnetos_hours_since_inspection     = excluded.magnetos_hours_since_inspection,
			magnetos_last_inspection_date       = excluded.magnetos_last_inspection_date,
			vacuum_pump_model                   = excluded.vacuum_pump_model,
			vacuum_pump_interval_hours          = excluded.vacuum_pump_interval_hours,
			vacuum_pump_hours_since_replacement = excluded.vacuum_pump_hours_since_replacement,
			vacuum_pump_last_replacement_date   = excluded.vacuum_pump_last_replacement_date,
			airframe_last_annual_date           = excluded.airframe_last_annual_date,
			airframe_hours_since_annual         = excluded.airframe_hours_since_annual,
			updated_at                          = excluded.updated_at
	`, cs.AircraftID, cs.UserID,
		cs.EngineModel, cs.EngineTBOHours, toNullFloat(cs.EngineHoursSinceOH), cs.EngineLastOverhaulDate,
		cs.PropellerType, cs.PropellerModel, toNullFloat(cs.PropellerIntervalYears),
		toNullFloat(cs.PropellerHoursSinceInsp), cs.PropellerLastInspDate,
		cs.AvionicsLastCertDate, cs.AvionicsCertIntervalMonths,
		cs.MagnetosModel, cs.MagnetosIntervalHours, toNullFloat(cs.MagnetosHoursSinceInsp),
		cs.MagnetosLastInspDate,
		cs.VacuumPumpModel, cs.VacuumPumpIntervalHours, toNullFloat(cs.VacuumPumpHoursSinceRepl),
		cs.VacuumPumpLastReplDate,
		cs.AirframeLastAnnualDate, toNullFloat(cs.AirframeHoursSinceAnnual),
		cs.CreatedAt, cs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: upsert component settings: %w", err)
	}
	return nil
}

// GetComponentSettings returns the stored settings of an aircraft, or
// ErrNotFound when none exist yet (callers fall back to defaults).
func (db *DB) GetComponentSettings(ctx context.Context, aircraftID string) (*models.ComponentSettings, error) {
	var (
		cs                                       models.ComponentSettings
		engOH, propYears, propInsp               sql.NullFloat64
		magInsp, vacRepl, airframeAnnual         sql.NullFloat64
	)
	err := db.conn.QueryRowContext(ctx, `
		SELECT aircraft_id, user_id,
			engine_model, engine_tbo_hours, engine_hours_since_overhaul, engine_last_overhaul_date,
			propeller_type, propeller_model, propeller_interval_years,
			propeller_hours_since_inspection, propeller_last_inspection_date,
			avionics_last_certification_date, avionics_cert_interval_months,
			magnetos_model, magnetos_interval_hours, magnetos_hours_since_inspection,
			magnetos_last_inspection_date,
			vacuum_pump_model, vacuum_pump_interval_hours, vacuum_pump_hours_since_replacement,
			vacuum_pump_last_replacement_date,
			airframe_last_annual_date, airframe_hours_since_annual,
			created_at, updated_at
		FROM component_settings WHERE aircraft_id = ?
	`, aircraftID).Scan(&cs.AircraftID, &cs.UserID,
		&cs.EngineModel, &cs.EngineTBOHours, &engOH, &cs.EngineLastOverhaulDate,
		&cs.PropellerType, &cs.PropellerModel, &propYears,
		&propInsp, &cs.PropellerLastInspDate,
		&cs.AvionicsLastCertDate, &cs.AvionicsCertIntervalMonths,
		&cs.MagnetosModel, &cs.MagnetosIntervalHours, &magInsp,
		&cs.MagnetosLastInspDate,
		&cs.VacuumPumpModel, &cs.VacuumPumpIntervalHours, &vacRepl,
		&cs.VacuumPumpLastReplDate,
		&cs.AirframeLastAnnualDate, &airframeAnnual,
		&cs.CreatedAt, &cs.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get component settings: %w", err)
	}
	cs.EngineHoursSinceOH = fromNullFloat(engOH)
	cs.PropellerIntervalYears = fromNullFloat(propYears)
	cs.PropellerHoursSinceInsp = fromNullFloat(propInsp)
	cs.MagnetosHoursSinceInsp = fromNullFloat(magInsp)
	cs.VacuumPumpHoursSinceRepl = fromNullFloat(vacRepl)
	cs.AirframeHoursSinceAnnual = fromNullFloat(airframeAnnual)
	return &cs, nil
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
