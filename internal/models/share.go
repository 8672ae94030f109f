package models

import "time"

// Share roles. A viewer reads records; a contributor may also edit them.
const (
	RoleViewer      = "viewer"
	RoleContributor = "contributor"
)

// Share statuses. An invite starts pending and becomes active when the
// invited mechanic accepts it. Revocation deletes the share outright.
const (
	ShareStatusPending = "pending"
	ShareStatusActive  = "active"
)

// Share grants an external mechanic (TEA/AMO) scoped access to one aircraft.
type Share struct {
	ID            string    `json:"id"`
	AircraftID    string    `json:"aircraft_id"`
	OwnerID       string    `json:"owner_id"`
	MechanicEmail string    `json:"mechanic_email"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Active reports whether the share currently grants access.
func (s *Share) Active() bool {
	return s.Status == ShareStatusActive
}

// CanEdit reports whether the share role allows mutating records.
func (s *Share) CanEdit() bool {
	return s.Role == RoleContributor
}
