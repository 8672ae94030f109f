package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "aerologix-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()
	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Test Pilot",
		PasswordHash: "x",
		Plan:         models.PlanFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func seedAircraft(t *testing.T, db *DB, userID, registration string) *models.Aircraft {
	t.Helper()
	now := time.Now().UTC()
	a := &models.Aircraft{
		ID:           uuid.NewString(),
		UserID:       userID,
		Registration: registration,
		Manufacturer: "Cessna",
		Model:        "172N",
		Year:         1978,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.CreateAircraft(context.Background(), a))
	return a
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedUser(t, db, "owner@example.com")

	dup := &models.User{
		ID: uuid.NewString(), Email: "owner@example.com", PasswordHash: "y",
		Plan: models.PlanFree, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	err := db.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
}

func TestGetUserByEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")

	got, err := db.GetUserByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = db.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSessions_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	now := time.Now().UTC()

	s := &models.Session{
		TokenHash: "hash-1",
		UserID:    u.ID,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, db.CreateSession(ctx, s))

	got, err := db.GetSession(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)

	require.NoError(t, db.DeleteSession(ctx, "hash-1"))
	_, err = db.GetSession(ctx, "hash-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPurgeExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	now := time.Now().UTC()

	require.NoError(t, db.CreateSession(ctx, &models.Session{
		TokenHash: "old", UserID: u.ID,
		ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour),
	}))
	require.NoError(t, db.CreateSession(ctx, &models.Session{
		TokenHash: "fresh", UserID: u.ID,
		ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	n, err := db.PurgeExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = db.GetSession(ctx, "old")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = db.GetSession(ctx, "fresh")
	assert.NoError(t, err)
}

func TestAircraft_CRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	a := seedAircraft(t, db, u.ID, "C-GABC")

	got, err := db.GetAircraft(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "C-GABC", got.Registration)

	got.Description = "fresh annual"
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, db.UpdateAircraft(ctx, got))

	again, err := db.GetAircraft(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh annual", again.Description)

	require.NoError(t, db.DeleteAircraft(ctx, a.ID))
	_, err = db.GetAircraft(ctx, a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAircraft_DuplicateRegistrationPerOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	seedAircraft(t, db, u.ID, "C-GABC")

	dup := &models.Aircraft{
		ID: uuid.NewString(), UserID: u.ID, Registration: "C-GABC",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	assert.ErrorIs(t, db.CreateAircraft(ctx, dup), apperr.ErrAlreadyExists)

	// Same registration under a different owner is fine.
	seedAircraft(t, db, other.ID, "C-GABC")
}

func TestAircraft_ListByOwnerNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	first := &models.Aircraft{
		ID: uuid.NewString(), UserID: u.ID, Registration: "C-GAAA",
		CreatedAt: time.Now().UTC().Add(-time.Hour), UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateAircraft(ctx, first))
	seedAircraft(t, db, u.ID, "C-GBBB")

	list, err := db.ListAircraftByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C-GBBB", list[0].Registration)
}

func TestShares_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	a := seedAircraft(t, db, u.ID, "C-GABC")
	now := time.Now().UTC()

	s := &models.Share{
		ID: uuid.NewString(), AircraftID: a.ID, OwnerID: u.ID,
		MechanicEmail: "amo@example.com", Role: models.RoleViewer,
		Status: models.ShareStatusPending, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.CreateShare(ctx, s))

	// Duplicate invite for the same aircraft+email.
	dup := *s
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, db.CreateShare(ctx, &dup), apperr.ErrAlreadyExists)

	byAircraft, err := db.ListSharesByAircraft(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byAircraft, 1)
	assert.Equal(t, models.ShareStatusPending, byAircraft[0].Status)

	require.NoError(t, db.UpdateShareStatus(ctx, s.ID, models.ShareStatusActive, now))
	got, err := db.GetShareFor(ctx, a.ID, "amo@example.com")
	require.NoError(t, err)
	assert.True(t, got.Active())

	shared, err := db.ListAircraftSharedWith(ctx, "amo@example.com")
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, a.ID, shared[0].ID)

	require.NoError(t, db.DeleteShare(ctx, s.ID))
	_, err = db.GetShare(ctx, s.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestShares_PendingGrantsNoAircraftAccess(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	a := seedAircraft(t, db, u.ID, "C-GABC")
	now := time.Now().UTC()

	require.NoError(t, db.CreateShare(ctx, &models.Share{
		ID: uuid.NewString(), AircraftID: a.ID, OwnerID: u.ID,
		MechanicEmail: "amo@example.com", Role: models.RoleContributor,
		Status: models.ShareStatusPending, CreatedAt: now, UpdatedAt: now,
	}))

	shared, err := db.ListAircraftSharedWith(ctx, "amo@example.com")
	require.NoError(t, err)
	assert.Empty(t, shared)
}

func TestELT_UpsertGetDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	a := seedAircraft(t, db, u.ID, "C-GABC")
	now := time.Now().UTC()
	test := now.AddDate(0, -3, 0)

	_, err := db.GetELT(ctx, a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	rec := &models.ELTRecord{
		AircraftID: a.ID, UserID: u.ID, Brand: "Kannad", Model: "406 AF",
		LastTestDate: &test, BatteryIntervalMonths: 72,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.UpsertELT(ctx, rec))

	got, err := db.GetELT(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kannad", got.Brand)
	require.NotNil(t, got.LastTestDate)
	assert.WithinDuration(t, test, *got.LastTestDate, time.Second)
	assert.Nil(t, got.BatteryExpiryDate)

	// Upsert replaces in place.
	expiry := now.AddDate(2, 0, 0)
	rec.BatteryExpiryDate = &expiry
	require.NoError(t, db.UpsertELT(ctx, rec))
	got, err = db.GetELT(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BatteryExpiryDate)

	require.NoError(t, db.DeleteELT(ctx, a.ID))
	_, err = db.GetELT(ctx, a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestComponentSettings_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	a := seedAircraft(t, db, u.ID, "C-GABC")
	now := time.Now().UTC()

	_, err := db.GetComponentSettings(ctx, a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	hours := 1450.5
	cs := models.DefaultComponentSettings(a.ID)
	cs.UserID = u.ID
	cs.EngineModel = "O-320-H2AD"
	cs.EngineHoursSinceOH = &hours
	cs.CreatedAt = now
	cs.UpdatedAt = now
	require.NoError(t, db.UpsertComponentSettings(ctx, &cs))

	got, err := db.GetComponentSettings(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "O-320-H2AD", got.EngineModel)
	require.NotNil(t, got.EngineHoursSinceOH)
	assert.Equal(t, hours, *got.EngineHoursSinceOH)
	assert.Nil(t, got.MagnetosHoursSinceInsp)
	assert.Equal(t, 2000.0, got.EngineTBOHours)
}

func TestDeleteAircraft_Cascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "owner@example.com")
	a := seedAircraft(t, db, u.ID, "C-GABC")
	now := time.Now().UTC()

	require.NoError(t, db.CreateShare(ctx, &models.Share{
		ID: uuid.NewString(), AircraftID: a.ID, OwnerID: u.ID,
		MechanicEmail: "amo@example.com", Role: models.RoleViewer,
		Status: models.ShareStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, db.UpsertELT(ctx, &models.ELTRecord{
		AircraftID: a.ID, UserID: u.ID, CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, db.DeleteAircraft(ctx, a.ID))

	shares, err := db.ListSharesByAircraft(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, shares)
	_, err = db.GetELT(ctx, a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
