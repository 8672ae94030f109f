// Package fleet implements the application service: accounts, aircraft,
// sharing with maintenance organizations, ELT compliance, and component
// settings. Handlers stay thin; all business rules live here.
package fleet

import (
	"context"
	"time"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/events"
	"github.com/aerologix/aerologix/internal/models"
	"github.com/aerologix/aerologix/internal/storage"
	"github.com/aerologix/aerologix/internal/store"
)

// Service coordinates the store, media storage, and event broker.
type Service struct {
	db         *store.DB
	media      storage.Provider
	broker     *events.Broker
	planLimits map[string]int
	sessionTTL time.Duration
	now        func() time.Time
}

// New creates a new Service. planLimits maps plan name to the maximum number
// of aircraft (-1 for unlimited); sessionTTL bounds bearer-token lifetime.
func New(db *store.DB, media storage.Provider, broker *events.Broker, planLimits map[string]int, sessionTTL time.Duration) *Service {
	return &Service{
		db:         db,
		media:      media,
		broker:     broker,
		planLimits: planLimits,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// publish is a nil-safe broadcast helper; the broker is optional in tests.
func (s *Service) publish(eventType string, data any) {
	if s.broker != nil {
		s.broker.Publish(eventType, data)
	}
}

// aircraftForRead returns the aircraft if the user owns it or holds an
// active share on it. Anything else is reported as not found so that the
// existence of other users' aircraft does not leak.
func (s *Service) aircraftForRead(ctx context.Context, user *models.User, aircraftID string) (*models.Aircraft, error) {
	a, err := s.db.GetAircraft(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if a.UserID == user.ID {
		return a, nil
	}
	share, err := s.db.GetShareFor(ctx, aircraftID, user.Email)
	if err != nil || !share.Active() {
		return nil, apperr.ErrNotFound
	}
	return a, nil
}

// aircraftForWrite returns the aircraft if the user owns it or holds an
// active contributor share. A viewer gets ErrForbidden; everyone else gets
// ErrNotFound.
func (s *Service) aircraftForWrite(ctx context.Context, user *models.User, aircraftID string) (*models.Aircraft, error) {
	a, err := s.db.GetAircraft(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if a.UserID == user.ID {
		return a, nil
	}
	share, err := s.db.GetShareFor(ctx, aircraftID, user.Email)
	if err != nil || !share.Active() {
		return nil, apperr.ErrNotFound
	}
	if !share.CanEdit() {
		return nil, apperr.ErrForbidden
	}
	return a, nil
}

// aircraftForOwner returns the aircraft only when the user owns it. Shared
// users are told the operation is forbidden, strangers that it does not exist.
func (s *Service) aircraftForOwner(ctx context.Context, user *models.User, aircraftID string) (*models.Aircraft, error) {
	a, err := s.aircraftForRead(ctx, user, aircraftID)
	if err != nil {
		return nil, err
	}
	if a.UserID != user.ID {
		return nil, apperr.ErrForbidden
	}
	return a, nil
}

// maxAircraft returns the aircraft limit for a plan; unknown plans fall back
// to the free limit, or 1 if even that is unset.
func (s *Service) maxAircraft(plan string) int {
	if n, ok := s.planLimits[plan]; ok {
		return n
	}
	if n, ok := s.planLimits[models.PlanFree]; ok {
		return n
	}
	return 1
}
