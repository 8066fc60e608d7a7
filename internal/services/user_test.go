package services

import (
	"context"
	"testing"
	"time"

	"court-queue-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T, store *fakeStore, now time.Time) *UserService {
	t.Helper()
	svc := NewUserService(store, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func TestRegisterNewAndExisting(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc := newTestDirectory(t, store, now)

	user, existing, err := svc.Register(ctx, "(202) 555-0142")
	require.NoError(t, err)
	assert.False(t, existing)
	assert.Equal(t, "2025550142", user.PhoneNumber)
	assert.NotEmpty(t, user.AnimalName)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), user.ExpiresAt)

	// Same phone, same day: the identity is returned unchanged
	again, existing, err := svc.Register(ctx, "2025550142")
	require.NoError(t, err)
	assert.True(t, existing)
	assert.Equal(t, user.AnimalName, again.AnimalName)
}

func TestRegisterInvalidPhone(t *testing.T) {
	ctx := context.Background()
	svc := newTestDirectory(t, newFakeStore(), time.Now())

	for _, phone := range []string{"", "12345", "not a phone", "0123456789"} {
		_, _, err := svc.Register(ctx, phone)
		assert.ErrorIs(t, err, models.ErrInvalidPhone, "phone %q", phone)
	}
}

func TestRegisterPurgesStaleIdentity(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	// Yesterday's identity for the same phone
	yesterday := now.AddDate(0, 0, -1)
	store.users["Panda"] = models.User{
		ID:          "old",
		PhoneNumber: "2025550142",
		AnimalName:  "Panda",
		CreatedAt:   yesterday,
		ExpiresAt:   yesterday.Add(10 * time.Hour),
	}

	svc := newTestDirectory(t, store, now)
	user, existing, err := svc.Register(ctx, "2025550142")
	require.NoError(t, err)
	assert.False(t, existing)

	// The stale row is gone; only the fresh identity remains
	_, stale := store.users["Panda"]
	if user.AnimalName == "Panda" {
		// Panda may be re-drawn from the pool, but never with yesterday's row
		assert.Equal(t, now, store.users["Panda"].CreatedAt)
	} else {
		assert.False(t, stale)
	}
}

func TestRegisterPoolExhausted(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	for _, name := range animalNames {
		store.addUser(name, now, now.Add(10*time.Hour))
	}

	svc := newTestDirectory(t, store, now)
	_, _, err := svc.Register(ctx, "2025550142")
	assert.ErrorIs(t, err, models.ErrNamePoolExhausted)
}

func TestIsActive(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	store.addUser("Ana", now, now.Add(10*time.Hour))
	store.addUser("Bob", now.AddDate(0, 0, -1), now.Add(-time.Hour))

	svc := newTestDirectory(t, store, now)

	active, err := svc.IsActive(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = svc.IsActive(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, active, "expired identity must not be active")

	active, err = svc.IsActive(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"ana":     "Ana",
		"BOB":     "Bob",
		"  cara ": "Cara",
		"dAn":     "Dan",
		"":        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in))
	}

	assert.Equal(t, []string{"Ana", "Bob"}, NormalizeNames([]string{"ana", " BOB ", ""}))
}
