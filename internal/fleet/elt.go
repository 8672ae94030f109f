package fleet

import (
	"context"
	"errors"
	"time"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/elt"
	"github.com/aerologix/aerologix/internal/events"
	"github.com/aerologix/aerologix/internal/models"
)

// ELTInput carries the writable fields of an ELT record.
type ELTInput struct {
	Brand                 string
	Model                 string
	SerialNumber          string
	BeaconHexID           string
	InstallationDate      *time.Time
	LastTestDate          *time.Time
	BatteryExpiryDate     *time.Time
	BatteryIntervalMonths int
}

// GetELT returns the ELT record of an aircraft the user may read.
// ErrNotFound means the aircraft exists but has no ELT configured.
func (s *Service) GetELT(ctx context.Context, user *models.User, aircraftID string) (*models.ELTRecord, error) {
	a, err := s.aircraftForRead(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}
	return s.db.GetELT(ctx, a.ID)
}

// PutELT creates or replaces the ELT record. Owners and contributors only.
func (s *Service) PutELT(ctx context.Context, user *models.User, aircraftID string, in ELTInput) (*models.ELTRecord, error) {
	a, err := s.aircraftForWrite(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created := now
	if existing, err := s.db.GetELT(ctx, a.ID); err == nil {
		created = existing.CreatedAt
	}

	rec := &models.ELTRecord{
		AircraftID:            a.ID,
		UserID:                a.UserID,
		Brand:                 in.Brand,
		Model:                 in.Model,
		SerialNumber:          in.SerialNumber,
		BeaconHexID:           in.BeaconHexID,
		InstallationDate:      in.InstallationDate,
		LastTestDate:          in.LastTestDate,
		BatteryExpiryDate:     in.BatteryExpiryDate,
		BatteryIntervalMonths: in.BatteryIntervalMonths,
		CreatedAt:             created,
		UpdatedAt:             now,
	}
	if err := s.db.UpsertELT(ctx, rec); err != nil {
		return nil, err
	}
	s.publish(events.ELTUpdated, map[string]string{"aircraft_id": a.ID})
	return rec, nil
}

// DeleteELT removes the ELT record. Owner only.
func (s *Service) DeleteELT(ctx context.Context, user *models.User, aircraftID string) error {
	a, err := s.aircraftForOwner(ctx, user, aircraftID)
	if err != nil {
		return err
	}
	if err := s.db.DeleteELT(ctx, a.ID); err != nil {
		return err
	}
	s.publish(events.ELTUpdated, map[string]string{"aircraft_id": a.ID})
	return nil
}

// ELTStatus derives the compliance report for an aircraft. An unconfigured
// ELT yields the "none / not configured" report rather than an error.
func (s *Service) ELTStatus(ctx context.Context, user *models.User, aircraftID string) (elt.StatusReport, error) {
	a, err := s.aircraftForRead(ctx, user, aircraftID)
	if err != nil {
		return elt.StatusReport{}, err
	}
	rec, err := s.db.GetELT(ctx, a.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return elt.StatusReport{}, err
	}
	return elt.Report(rec, s.now()), nil
}
