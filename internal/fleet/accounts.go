package fleet

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/auth"
	"github.com/aerologix/aerologix/internal/models"
)

// NormalizeEmail lowercases and trims an email address. Share invitations and
// account lookups must agree on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account and opens a session. The raw bearer token is
// returned once and never stored.
func (s *Service) Signup(ctx context.Context, email, name, password string) (*models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	now := s.now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Plan:         models.PlanFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and opens a session. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.db.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, "", apperr.ErrInvalidCredentials
	}
	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout destroys the session behind a bearer token. Unknown tokens are a
// no-op; logout never fails for the client.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.db.DeleteSession(ctx, auth.HashToken(token))
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.ErrUnauthorized
	}
	sess, err := s.db.GetSession(ctx, auth.HashToken(token))
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	if sess.Expired(s.now()) {
		_ = s.db.DeleteSession(ctx, sess.TokenHash)
		return nil, apperr.ErrUnauthorized
	}
	u, err := s.db.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	return u, nil
}

// PurgeExpiredSessions removes stale sessions; called from the background loop.
func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.db.PurgeExpiredSessions(ctx, s.now())
}

func (s *Service) openSession(ctx context.Context, userID string) (string, error) {
	token, err := auth.NewToken()
	if err != nil {
		return "", err
	}
	now := s.now().UTC()
	sess := &models.Session{
		TokenHash: auth.HashToken(token),
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.db.CreateSession(ctx, sess); err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	return token, nil
}
