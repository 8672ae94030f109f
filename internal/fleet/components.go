package fleet

import (
	"context"
	"errors"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/models"
)

// GetComponentSettings returns the stored component settings of an aircraft,
// or the Canadian regulation defaults when none exist yet.
func (s *Service) GetComponentSettings(ctx context.Context, user *models.User, aircraftID string) (*models.ComponentSettings, error) {
	a, err := s.aircraftForRead(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}
	cs, err := s.db.GetComponentSettings(ctx, a.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		defaults := models.DefaultComponentSettings(a.ID)
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// PutComponentSettings creates or replaces the component settings.
// Owners and contributors only.
func (s *Service) PutComponentSettings(ctx context.Context, user *models.User, aircraftID string, cs models.ComponentSettings) (*models.ComponentSettings, error) {
	a, err := s.aircraftForWrite(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	cs.AircraftID = a.ID
	cs.UserID = a.UserID
	cs.CreatedAt = now
	cs.UpdatedAt = now
	if existing, err := s.db.GetComponentSettings(ctx, a.ID); err == nil {
		cs.CreatedAt = existing.CreatedAt
	}

	if err := s.db.UpsertComponentSettings(ctx, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}
