// Package models defines the domain types for the AeroLogix backend.
package models

import "time"

// Plan identifiers. The aircraft limit for each plan lives in configuration.
const (
	PlanFree      = "free"
	PlanPro       = "pro"
	PlanUnlimited = "unlimited"
)

// User is an account holder: an aircraft owner or an invited mechanic.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is a persisted bearer-token session. Only the SHA-256 hash of the
// token is stored; the raw token is returned once at login/signup.
type Session struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
