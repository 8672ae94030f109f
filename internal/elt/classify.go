// Package elt derives the compliance status of an Emergency Locator
// Transmitter from its test and battery dates.
package elt

import (
	"time"

	"github.com/aerologix/aerologix/internal/models"
)

// Status is the four-way ELT display status.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusNone     Status = "none"
)

// Alert levels.
const (
	LevelWarning  = "warning"
	LevelCritical = "critical"
)

// Alert is a single compliance finding attached to an ELT record.
type Alert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Derivation thresholds. An ELT must be tested every 12 months (CAR 571
// Appendix G); the battery warning window mirrors the mobile app.
const (
	testInterval       = 12 * 30 * 24 * time.Hour
	testWarningLead    = 30 * 24 * time.Hour
	batteryWarningLead = 60 * 24 * time.Hour
)

// DeriveAlerts computes the alert list for a record as of now.
// Only dates that are present produce alerts; a blank record stays silent.
func DeriveAlerts(rec *models.ELTRecord, now time.Time) []Alert {
	var alerts []Alert

	if d := rec.BatteryExpiryDate; d != nil {
		switch {
		case d.Before(now):
			alerts = append(alerts, Alert{Level: LevelCritical, Message: "ELT battery expired"})
		case d.Sub(now) <= batteryWarningLead:
			alerts = append(alerts, Alert{Level: LevelWarning, Message: "ELT battery expires soon"})
		}
	}

	if d := rec.LastTestDate; d != nil {
		due := d.Add(testInterval)
		switch {
		case due.Before(now):
			alerts = append(alerts, Alert{Level: LevelCritical, Message: "ELT annual test overdue"})
		case due.Sub(now) <= testWarningLead:
			alerts = append(alerts, Alert{Level: LevelWarning, Message: "ELT annual test due soon"})
		}
	}

	return alerts
}

// Classify maps the record dates and alert list onto a status:
//
//   - both dates absent            -> none
//   - any critical alert           -> critical
//   - any warning alert (no crit)  -> warning
//   - otherwise                    -> ok
func Classify(lastTest, batteryExpiry *time.Time, alerts []Alert) Status {
	if lastTest == nil && batteryExpiry == nil {
		return StatusNone
	}
	for _, a := range alerts {
		if a.Level == LevelCritical {
			return StatusCritical
		}
	}
	for _, a := range alerts {
		if a.Level == LevelWarning {
			return StatusWarning
		}
	}
	return StatusOK
}

// StatusReport is the payload of the status endpoint.
type StatusReport struct {
	Status Status  `json:"status"`
	Label  string  `json:"label,omitempty"`
	Alerts []Alert `json:"alerts"`
}

// Report derives alerts and classifies a record in one step. A nil record
// means the aircraft has no ELT configured.
func Report(rec *models.ELTRecord, now time.Time) StatusReport {
	if rec == nil {
		return StatusReport{Status: StatusNone, Label: "not configured", Alerts: []Alert{}}
	}
	alerts := DeriveAlerts(rec, now)
	if alerts == nil {
		alerts = []Alert{}
	}
	return StatusReport{
		Status: Classify(rec.LastTestDate, rec.BatteryExpiryDate, alerts),
		Alerts: alerts,
	}
}
