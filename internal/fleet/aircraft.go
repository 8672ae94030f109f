package fleet

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/checksum"
	"github.com/aerologix/aerologix/internal/events"
	"github.com/aerologix/aerologix/internal/models"
)

// FormatRegistration normalises a registration mark to its canonical
// uppercase form.
func FormatRegistration(registration string) string {
	return strings.ToUpper(strings.TrimSpace(registration))
}

// CreateAircraftInput carries the fields of a new aircraft.
type CreateAircraftInput struct {
	Registration   string
	AircraftType   string
	Manufacturer   string
	Model          string
	Year           int
	SerialNumber   string
	AirframeHours  float64
	EngineHours    float64
	PropellerHours float64
	PhotoURL       string
	Description    string
}

// CreateAircraft registers a new aircraft for the owner, enforcing the plan
// limit and per-owner registration uniqueness.
func (s *Service) CreateAircraft(ctx context.Context, owner *models.User, in CreateAircraftInput) (*models.Aircraft, error) {
	if limit := s.maxAircraft(owner.Plan); limit != -1 {
		n, err := s.db.CountAircraft(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if n >= limit {
			return nil, apperr.ErrLimitExceeded
		}
	}

	now := s.now().UTC()
	a := &models.Aircraft{
		ID:             uuid.NewString(),
		UserID:         owner.ID,
		Registration:   FormatRegistration(in.Registration),
		AircraftType:   in.AircraftType,
		Manufacturer:   in.Manufacturer,
		Model:          in.Model,
		Year:           in.Year,
		SerialNumber:   in.SerialNumber,
		AirframeHours:  in.AirframeHours,
		EngineHours:    in.EngineHours,
		PropellerHours: in.PropellerHours,
		PhotoURL:       in.PhotoURL,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.CreateAircraft(ctx, a); err != nil {
		return nil, err
	}
	s.publish(events.AircraftCreated, map[string]string{"id": a.ID})
	return a, nil
}

// ListAircraft returns the owner's aircraft, newest first.
func (s *Service) ListAircraft(ctx context.Context, owner *models.User) ([]models.Aircraft, error) {
	return s.db.ListAircraftByOwner(ctx, owner.ID)
}

// ListSharedAircraft returns aircraft shared with the user via active shares.
func (s *Service) ListSharedAircraft(ctx context.Context, user *models.User) ([]models.Aircraft, error) {
	return s.db.ListAircraftSharedWith(ctx, user.Email)
}

// GetAircraft returns one aircraft the user may read.
func (s *Service) GetAircraft(ctx context.Context, user *models.User, aircraftID string) (*models.Aircraft, error) {
	return s.aircraftForRead(ctx, user, aircraftID)
}

// UpdateAircraft applies a partial edit. Owners and active contributors may
// edit; viewers are rejected.
func (s *Service) UpdateAircraft(ctx context.Context, user *models.User, aircraftID string, upd models.AircraftUpdate) (*models.Aircraft, error) {
	a, err := s.aircraftForWrite(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}

	if upd.Registration != nil {
		a.Registration = FormatRegistration(*upd.Registration)
	}
	if upd.AircraftType != nil {
		a.AircraftType = *upd.AircraftType
	}
	if upd.Manufacturer != nil {
		a.Manufacturer = *upd.Manufacturer
	}
	if upd.Model != nil {
		a.Model = *upd.Model
	}
	if upd.Year != nil {
		a.Year = *upd.Year
	}
	if upd.SerialNumber != nil {
		a.SerialNumber = *upd.SerialNumber
	}
	if upd.AirframeHours != nil {
		a.AirframeHours = *upd.AirframeHours
	}
	if upd.EngineHours != nil {
		a.EngineHours = *upd.EngineHours
	}
	if upd.PropellerHours != nil {
		a.PropellerHours = *upd.PropellerHours
	}
	if upd.PhotoURL != nil {
		a.PhotoURL = *upd.PhotoURL
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	a.UpdatedAt = s.now().UTC()

	if err := s.db.UpdateAircraft(ctx, a); err != nil {
		return nil, err
	}
	s.publish(events.AircraftUpdated, map[string]string{"id": a.ID})
	return a, nil
}

// DeleteAircraft removes an aircraft and its stored media. Owner only.
func (s *Service) DeleteAircraft(ctx context.Context, user *models.User, aircraftID string) error {
	a, err := s.aircraftForOwner(ctx, user, aircraftID)
	if err != nil {
		return err
	}
	if err := s.db.DeleteAircraft(ctx, a.ID); err != nil {
		return err
	}
	if s.media != nil {
		_ = s.media.DeleteAll(a.ID)
	}
	s.publish(events.AircraftDeleted, map[string]string{"id": a.ID})
	return nil
}

// AttachPhoto stores an uploaded photo and points the aircraft photo URL at
// it. Owners and active contributors may upload.
func (s *Service) AttachPhoto(ctx context.Context, user *models.User, aircraftID, filename string, content []byte) (*models.MediaInfo, error) {
	a, err := s.aircraftForWrite(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}
	if err := s.media.Write(a.ID, filename, content); err != nil {
		return nil, err
	}

	url := "/media/" + a.ID + "/" + filename
	a.PhotoURL = url
	a.UpdatedAt = s.now().UTC()
	if err := s.db.UpdateAircraft(ctx, a); err != nil {
		return nil, err
	}
	s.publish(events.AircraftUpdated, map[string]string{"id": a.ID})

	return &models.MediaInfo{
		AircraftID: a.ID,
		Filename:   filename,
		Size:       int64(len(content)),
		Checksum:   checksum.Sum(content),
		UpdatedAt:  a.UpdatedAt,
	}, nil
}

// ListMedia returns all stored media of an aircraft the user may read.
func (s *Service) ListMedia(ctx context.Context, user *models.User, aircraftID string) ([]models.MediaInfo, error) {
	a, err := s.aircraftForRead(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}
	return s.media.List(a.ID)
}
