package api

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/aerologix/aerologix/internal/models"
)

// Date accepts both "2006-01-02" and RFC 3339 timestamps; mobile clients
// send plain dates while integrations tend to send full timestamps.
type Date struct {
	time.Time
}

// UnmarshalJSON parses either supported layout. null and "" mean unset.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// MarshalJSON renders the stored time as RFC 3339, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}

// Ptr returns the wrapped time, or nil when unset.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.Name, validation.Length(0, 200)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// authResponse is returned by signup and login.
type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type createAircraftRequest struct {
	Registration   string  `json:"registration"`
	AircraftType   string  `json:"aircraft_type"`
	Manufacturer   string  `json:"manufacturer"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	SerialNumber   string  `json:"serial_number"`
	AirframeHours  float64 `json:"airframe_hours"`
	EngineHours    float64 `json:"engine_hours"`
	PropellerHours float64 `json:"propeller_hours"`
	PhotoURL       string  `json:"photo_url"`
	Description    string  `json:"description"`
}

func (r createAircraftRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Registration, validation.Required, validation.Length(2, 10)),
		validation.Field(&r.Year, validation.Min(0), validation.Max(2100)),
		validation.Field(&r.AirframeHours, validation.Min(0.0)),
		validation.Field(&r.EngineHours, validation.Min(0.0)),
		validation.Field(&r.PropellerHours, validation.Min(0.0)),
	)
}

type inviteShareRequest struct {
	AircraftID    string `json:"aircraft_id"`
	MechanicEmail string `json:"mechanic_email"`
	Role          string `json:"role"`
}

func (r inviteShareRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AircraftID, validation.Required, is.UUIDv4),
		validation.Field(&r.MechanicEmail, validation.Required, is.Email),
		validation.Field(&r.Role, validation.Required,
			validation.In(models.RoleViewer, models.RoleContributor)),
	)
}

type eltRequest struct {
	Brand                 string `json:"brand"`
	Model                 string `json:"model"`
	SerialNumber          string `json:"serial_number"`
	BeaconHexID           string `json:"beacon_hex_id"`
	InstallationDate      *Date  `json:"installation_date"`
	LastTestDate          *Date  `json:"last_test_date"`
	BatteryExpiryDate     *Date  `json:"battery_expiry_date"`
	BatteryIntervalMonths int    `json:"battery_interval_months"`
}

func (r eltRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BatteryIntervalMonths, validation.Min(0), validation.Max(240)),
		validation.Field(&r.BeaconHexID, validation.Length(0, 23)),
	)
}

type componentSettingsRequest struct {
	models.ComponentSettings
}

func (r componentSettingsRequest) Validate() error {
	return validation.ValidateStruct(&r.ComponentSettings,
		validation.Field(&r.PropellerType, validation.Required,
			validation.In(models.PropellerFixed, models.PropellerVariable)),
		validation.Field(&r.EngineTBOHours, validation.Min(0.0)),
		validation.Field(&r.MagnetosIntervalHours, validation.Min(0.0)),
		validation.Field(&r.VacuumPumpIntervalHours, validation.Min(0.0)),
		validation.Field(&r.AvionicsCertIntervalMonths, validation.Min(0), validation.Max(120)),
	)
}

// regulationsResponse wraps the reference values with their disclaimer.
type regulationsResponse struct {
	Disclaimer  string             `json:"disclaimer"`
	Regulations models.Regulations `json:"regulations"`
	Sources     []string           `json:"sources"`
}

// componentSettingsResponse carries stored settings plus the regulation
// reference block the mobile screens render alongside.
type componentSettingsResponse struct {
	models.ComponentSettings
	Regulations models.Regulations `json:"regulations"`
}

const regulationsDisclaimer = "Reference values are informational only. Always consult official documents and a certified AME."

var regulationsSources = []string{
	"Transport Canada RAC 605",
	"Transport Canada Standard 625",
}
