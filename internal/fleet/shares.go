package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/events"
	"github.com/aerologix/aerologix/internal/models"
)

// InviteShare creates a pending share granting a mechanic email access to an
// aircraft. Owner only; self-invitations and duplicates are rejected.
func (s *Service) InviteShare(ctx context.Context, owner *models.User, aircraftID, mechanicEmail, role string) (*models.Share, error) {
	a, err := s.aircraftForOwner(ctx, owner, aircraftID)
	if err != nil {
		return nil, err
	}

	email := NormalizeEmail(mechanicEmail)
	if email == owner.Email {
		return nil, apperr.ErrConflict
	}

	now := s.now().UTC()
	share := &models.Share{
		ID:            uuid.NewString(),
		AircraftID:    a.ID,
		OwnerID:       owner.ID,
		MechanicEmail: email,
		Role:          role,
		Status:        models.ShareStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.db.CreateShare(ctx, share); err != nil {
		return nil, err
	}
	s.publish(events.ShareCreated, map[string]string{
		"id": share.ID, "aircraft_id": a.ID,
	})
	return share, nil
}

// ListShares returns all shares of an aircraft. Owner only.
func (s *Service) ListShares(ctx context.Context, owner *models.User, aircraftID string) ([]models.Share, error) {
	a, err := s.aircraftForOwner(ctx, owner, aircraftID)
	if err != nil {
		return nil, err
	}
	return s.db.ListSharesByAircraft(ctx, a.ID)
}

// ReceivedShares returns shares addressed to the user's email.
func (s *Service) ReceivedShares(ctx context.Context, user *models.User) ([]models.Share, error) {
	return s.db.ListSharesByEmail(ctx, user.Email)
}

// AcceptShare transitions a pending share to active. Only the invited
// mechanic may accept; anyone else sees not found.
func (s *Service) AcceptShare(ctx context.Context, user *models.User, shareID string) (*models.Share, error) {
	share, err := s.db.GetShare(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share.MechanicEmail != user.Email {
		return nil, apperr.ErrNotFound
	}
	if share.Status == models.ShareStatusActive {
		return share, nil
	}
	now := s.now().UTC()
	if err := s.db.UpdateShareStatus(ctx, share.ID, models.ShareStatusActive, now); err != nil {
		return nil, err
	}
	share.Status = models.ShareStatusActive
	share.UpdatedAt = now
	s.publish(events.ShareAccepted, map[string]string{
		"id": share.ID, "aircraft_id": share.AircraftID,
	})
	return share, nil
}

// RevokeShare deletes a share. Owner only; the invited mechanic cannot
// revoke, only ignore.
func (s *Service) RevokeShare(ctx context.Context, owner *models.User, shareID string) error {
	share, err := s.db.GetShare(ctx, shareID)
	if err != nil {
		return err
	}
	if share.OwnerID != owner.ID {
		return apperr.ErrNotFound
	}
	if err := s.db.DeleteShare(ctx, share.ID); err != nil {
		return err
	}
	s.publish(events.ShareRevoked, map[string]string{
		"id": share.ID, "aircraft_id": share.AircraftID,
	})
	return nil
}
