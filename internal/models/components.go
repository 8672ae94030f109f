package models

import "time"

// Propeller types. Fixed pitch props follow the 5-year inspection rule,
// variable pitch props follow the manufacturer interval or 10 years.
const (
	PropellerFixed    = "fixed"
	PropellerVariable = "variable"
)

// ComponentSettings stores user-configurable maintenance intervals for the
// major components of one aircraft. All values are informational only; no
// airworthiness determination is derived from them.
type ComponentSettings struct {
	AircraftID string `json:"aircraft_id"`
	UserID     string `json:"user_id,omitempty"`

	EngineModel             string   `json:"engine_model,omitempty"`
	EngineTBOHours          float64  `json:"engine_tbo_hours"`
	EngineHoursSinceOH      *float64 `json:"engine_hours_since_overhaul,omitempty"`
	EngineLastOverhaulDate  string   `json:"engine_last_overhaul_date,omitempty"`

	PropellerType              string   `json:"propeller_type"`
	PropellerModel             string   `json:"propeller_model,omitempty"`
	PropellerIntervalYears     *float64 `json:"propeller_manufacturer_interval_years,omitempty"`
	PropellerHoursSinceInsp    *float64 `json:"propeller_hours_since_inspection,omitempty"`
	PropellerLastInspDate      string   `json:"propeller_last_inspection_date,omitempty"`

	AvionicsLastCertDate       string `json:"avionics_last_certification_date,omitempty"`
	AvionicsCertIntervalMonths int    `json:"avionics_certification_interval_months"`

	MagnetosModel          string   `json:"magnetos_model,omitempty"`
	MagnetosIntervalHours  float64  `json:"magnetos_interval_hours"`
	MagnetosHoursSinceInsp *float64 `json:"magnetos_hours_since_inspection,omitempty"`
	MagnetosLastInspDate   string   `json:"magnetos_last_inspection_date,omitempty"`

	VacuumPumpModel           string   `json:"vacuum_pump_model,omitempty"`
	VacuumPumpIntervalHours   float64  `json:"vacuum_pump_interval_hours"`
	VacuumPumpHoursSinceRepl  *float64 `json:"vacuum_pump_hours_since_replacement,omitempty"`
	VacuumPumpLastReplDate    string   `json:"vacuum_pump_last_replacement_date,omitempty"`

	AirframeLastAnnualDate   string   `json:"airframe_last_annual_date,omitempty"`
	AirframeHoursSinceAnnual *float64 `json:"airframe_hours_since_annual,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Regulations holds the Transport Canada reference values (RAC 605 /
// Standard 625) returned alongside component settings. Informational only.
type Regulations struct {
	PropellerFixedMaxYears        int `json:"propeller_fixed_max_years"`
	PropellerVariableFallbackYears int `json:"propeller_variable_fallback_years"`
	AvionicsCertificationMonths   int `json:"avionics_certification_months"`
	MagnetosDefaultHours          int `json:"magnetos_default_hours"`
	VacuumPumpDefaultHours        int `json:"vacuum_pump_default_hours"`
	EngineDefaultTBO              int `json:"engine_default_tbo"`
}

// CanadianRegulations are the reference values shipped with the application.
var CanadianRegulations = Regulations{
	PropellerFixedMaxYears:        5,
	PropellerVariableFallbackYears: 10,
	AvionicsCertificationMonths:   24,
	MagnetosDefaultHours:          500,
	VacuumPumpDefaultHours:        400,
	EngineDefaultTBO:              2000,
}

// DefaultComponentSettings returns the regulation-default settings for an
// aircraft that has none stored yet.
func DefaultComponentSettings(aircraftID string) ComponentSettings {
	return ComponentSettings{
		AircraftID:                 aircraftID,
		EngineTBOHours:             float64(CanadianRegulations.EngineDefaultTBO),
		PropellerType:              PropellerFixed,
		AvionicsCertIntervalMonths: CanadianRegulations.AvionicsCertificationMonths,
		MagnetosIntervalHours:      float64(CanadianRegulations.MagnetosDefaultHours),
		VacuumPumpIntervalHours:    float64(CanadianRegulations.VacuumPumpDefaultHours),
	}
}
