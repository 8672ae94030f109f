package models

import "time"

// Aircraft is a registered aircraft owned by a user. Registration marks are
// stored uppercase and are unique per owner.
type Aircraft struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Registration   string    `json:"registration"`
	AircraftType   string    `json:"aircraft_type,omitempty"`
	Manufacturer   string    `json:"manufacturer,omitempty"`
	Model          string    `json:"model,omitempty"`
	Year           int       `json:"year,omitempty"`
	SerialNumber   string    `json:"serial_number,omitempty"`
	AirframeHours  float64   `json:"airframe_hours"`
	EngineHours    float64   `json:"engine_hours"`
	PropellerHours float64   `json:"propeller_hours"`
	PhotoURL       string    `json:"photo_url,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AircraftUpdate carries a partial aircraft edit. Nil fields are left unchanged.
type AircraftUpdate struct {
	Registration   *string  `json:"registration,omitempty"`
	AircraftType   *string  `json:"aircraft_type,omitempty"`
	Manufacturer   *string  `json:"manufacturer,omitempty"`
	Model          *string  `json:"model,omitempty"`
	Year           *int     `json:"year,omitempty"`
	SerialNumber   *string  `json:"serial_number,omitempty"`
	AirframeHours  *float64 `json:"airframe_hours,omitempty"`
	EngineHours    *float64 `json:"engine_hours,omitempty"`
	PropellerHours *float64 `json:"propeller_hours,omitempty"`
	PhotoURL       *string  `json:"photo_url,omitempty"`
	Description    *string  `json:"description,omitempty"`
}

// MediaInfo describes one stored media file (photo or document) of an aircraft.
type MediaInfo struct {
	AircraftID string    `json:"aircraft_id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	Checksum   string    `json:"checksum"`
	UpdatedAt  time.Time `json:"updated_at"`
}
