package models

import "time"

// ELTRecord holds the Emergency Locator Transmitter data for one aircraft.
// An aircraft has at most one record; both compliance dates are optional
// because owners often start from an empty logbook entry.
type ELTRecord struct {
	AircraftID            string     `json:"aircraft_id"`
	UserID                string     `json:"user_id"`
	Brand                 string     `json:"brand,omitempty"`
	Model                 string     `json:"model,omitempty"`
	SerialNumber          string     `json:"serial_number,omitempty"`
	BeaconHexID           string     `json:"beacon_hex_id,omitempty"`
	InstallationDate      *time.Time `json:"installation_date,omitempty"`
	LastTestDate          *time.Time `json:"last_test_date"`
	BatteryExpiryDate     *time.Time `json:"battery_expiry_date"`
	BatteryIntervalMonths int        `json:"battery_interval_months,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
