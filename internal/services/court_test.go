package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-queue-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, store *fakeStore, now time.Time) *CourtService {
	t.Helper()
	svc := NewCourtService(store, store, store, nil, time.Hour, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func registerPlayers(store *fakeStore, now time.Time, names ...string) {
	dayEnd := now.Add(12 * time.Hour)
	for _, name := range names {
		store.addUser(name, now, dayEnd)
	}
}

func TestReservationLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	require.NoError(t, store.EnsureSlots(ctx, 5))
	registerPlayers(store, now, "Ana", "Bob", "Cara", "Dan")

	svc := newTestEngine(t, store, now)

	// Half-court reservation on a free court succeeds
	res, err := svc.Reserve(ctx, 3, []string{"ana", "bob"}, models.KindHalf, models.OptionMerge)
	require.NoError(t, err)
	assert.Equal(t, models.KindHalf, res.Kind)
	assert.Equal(t, []string{"Ana", "Bob"}, res.Participants)
	require.NotNil(t, res.Option)
	assert.Equal(t, models.OptionMerge, *res.Option)
	assert.Equal(t, now.Add(time.Hour), res.EndTime)

	court, err := store.Get(ctx, 3)
	require.NoError(t, err)
	assert.False(t, court.IsAvailable)

	// The court board shows the normalized participants
	courts, err := svc.List(ctx, true)
	require.NoError(t, err)
	occupied := courts[2]
	require.NotNil(t, occupied.CurrentReservation)
	assert.Equal(t, []string{"Ana", "Bob"}, occupied.CurrentReservation.Participants)

	// A second reservation against the same court conflicts
	registerPlayers(store, now, "Fox", "Gull")
	_, err = svc.Reserve(ctx, 3, []string{"fox", "gull"}, models.KindHalf, models.OptionQueue)
	assert.ErrorIs(t, err, models.ErrCourtNotAvailable)

	// Merging two fresh players promotes the half court to full
	merged, err := svc.Merge(ctx, 3, []string{"cara", "dan"})
	require.NoError(t, err)
	assert.Equal(t, models.KindFull, merged.Kind)
	assert.Equal(t, []string{"Ana", "Bob", "Cara", "Dan"}, merged.Participants)

	// A busy player cannot appear in another reservation
	_, err = svc.Reserve(ctx, 4, []string{"ana", "fox"}, models.KindHalf, models.OptionMerge)
	assert.ErrorIs(t, err, models.ErrBusyPlayers)
	assert.Contains(t, err.Error(), "Ana")

	// A full court cannot be merged again
	registerPlayers(store, now, "Hare", "Ibis")
	_, err = svc.Merge(ctx, 3, []string{"hare", "ibis"})
	assert.ErrorIs(t, err, models.ErrNotHalfCourt)

	// Once the reservation expires, the next read sweeps it away
	later := now.Add(61 * time.Minute)
	svc.now = func() time.Time { return later }
	courts, err = svc.List(ctx, true)
	require.NoError(t, err)
	assert.True(t, courts[2].IsAvailable)
	assert.Nil(t, courts[2].CurrentReservation)
	assert.Empty(t, store.reservations)
}

func TestReserveValidation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	newFixture := func(t *testing.T) (*CourtService, *fakeStore) {
		store := newFakeStore()
		require.NoError(t, store.EnsureSlots(ctx, 3))
		registerPlayers(store, now, "Ana", "Bob", "Cara", "Dan")
		return newTestEngine(t, store, now), store
	}

	t.Run("duplicate players", func(t *testing.T) {
		svc, _ := newFixture(t)
		_, err := svc.Reserve(ctx, 1, []string{"ana", "Ana"}, models.KindHalf, models.OptionMerge)
		assert.ErrorIs(t, err, models.ErrDuplicatePlayers)
	})

	t.Run("invalid kind", func(t *testing.T) {
		svc, _ := newFixture(t)
		_, err := svc.Reserve(ctx, 1, []string{"ana", "bob"}, "doubles", models.OptionMerge)
		assert.ErrorIs(t, err, models.ErrInvalidKind)
	})

	t.Run("half court requires option", func(t *testing.T) {
		svc, _ := newFixture(t)
		_, err := svc.Reserve(ctx, 1, []string{"ana", "bob"}, models.KindHalf, "")
		assert.ErrorIs(t, err, models.ErrInvalidOption)
	})

	t.Run("wrong player count", func(t *testing.T) {
		svc, _ := newFixture(t)
		_, err := svc.Reserve(ctx, 1, []string{"ana", "bob"}, models.KindFull, "")
		assert.ErrorIs(t, err, models.ErrWrongPlayerCount)
	})

	t.Run("unknown players named in error", func(t *testing.T) {
		svc, _ := newFixture(t)
		_, err := svc.Reserve(ctx, 1, []string{"ana", "ghost"}, models.KindHalf, models.OptionQueue)
		require.ErrorIs(t, err, models.ErrUnknownPlayers)
		assert.Contains(t, err.Error(), "Ghost")
	})

	t.Run("missing court", func(t *testing.T) {
		svc, _ := newFixture(t)
		_, err := svc.Reserve(ctx, 99, []string{"ana", "bob"}, models.KindHalf, models.OptionMerge)
		assert.ErrorIs(t, err, models.ErrCourtNotFound)
	})

	t.Run("full court stores no option", func(t *testing.T) {
		svc, _ := newFixture(t)
		res, err := svc.Reserve(ctx, 1, []string{"ana", "bob", "cara", "dan"}, models.KindFull, "")
		require.NoError(t, err)
		assert.Nil(t, res.Option)
	})
}

func TestMergeValidation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	require.NoError(t, store.EnsureSlots(ctx, 3))
	registerPlayers(store, now, "Ana", "Bob", "Cara", "Dan")
	svc := newTestEngine(t, store, now)

	_, err := svc.Merge(ctx, 1, []string{"cara", "dan"})
	assert.ErrorIs(t, err, models.ErrCourtNotInUse)

	_, err = svc.Merge(ctx, 1, []string{"cara"})
	assert.ErrorIs(t, err, models.ErrWrongPlayerCount)

	_, err = svc.Merge(ctx, 1, []string{"cara", "Cara"})
	assert.ErrorIs(t, err, models.ErrDuplicatePlayers)
}

func TestActiveAndIdleUsers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	require.NoError(t, store.EnsureSlots(ctx, 3))
	registerPlayers(store, now, "Ana", "Bob", "Cara")
	svc := newTestEngine(t, store, now)

	_, err := svc.Reserve(ctx, 2, []string{"ana", "bob"}, models.KindHalf, models.OptionQueue)
	require.NoError(t, err)

	active, err := svc.ActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Ana", active[0].Username)
	assert.Equal(t, 2, active[0].CourtNumber)

	idle, err := svc.IdleUsers(ctx)
	require.NoError(t, err)
	require.Len(t, idle, 1)
	assert.Equal(t, "Cara", idle[0].AnimalName)
}

func TestValidatePlayers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	require.NoError(t, store.EnsureSlots(ctx, 3))
	registerPlayers(store, now, "Ana", "Bob")
	svc := newTestEngine(t, store, now)

	_, err := svc.Reserve(ctx, 1, []string{"ana", "bob"}, models.KindHalf, models.OptionMerge)
	require.NoError(t, err)

	result, err := svc.ValidatePlayers(ctx, []string{"ana", "ghost"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Ghost"}, result.Unknown)
	assert.Contains(t, result.Message, "Ghost")

	result, err = svc.ValidatePlayers(ctx, []string{"ana"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Ana"}, result.Busy)

	registerPlayers(store, now, "Cara")
	result, err = svc.ValidatePlayers(ctx, []string{"cara"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "All players are valid", result.Message)
}

func TestForceReleaseAndVisibility(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	require.NoError(t, store.EnsureSlots(ctx, 3))
	registerPlayers(store, now, "Ana", "Bob")
	svc := newTestEngine(t, store, now)

	_, err := svc.Reserve(ctx, 1, []string{"ana", "bob"}, models.KindHalf, models.OptionMerge)
	require.NoError(t, err)

	// Admin reset tears down even an unexpired reservation and reports
	// the freed court
	court, err := svc.ForceRelease(ctx, 1)
	require.NoError(t, err)
	assert.True(t, court.IsAvailable)
	assert.Nil(t, court.CurrentReservationID)
	assert.Empty(t, store.reservations)

	_, err = svc.ForceRelease(ctx, 99)
	assert.ErrorIs(t, err, models.ErrCourtNotFound)

	// Hidden courts drop out of the visible board but stay on the admin board
	hidden, err := svc.ToggleVisibility(ctx, 2)
	require.NoError(t, err)
	assert.False(t, hidden.IsVisible)

	visible, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	require.NoError(t, store.EnsureSlots(ctx, 2))
	registerPlayers(store, now, "Ana", "Bob")
	svc := newTestEngine(t, store, now)

	res, err := svc.Reserve(ctx, 1, []string{"ana", "bob"}, models.KindHalf, models.OptionQueue)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, res.ID))
	court, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, court.IsAvailable)
	assert.Empty(t, store.reservations)

	// Cancelled players are free to reserve again
	_, err = svc.Reserve(ctx, 2, []string{"ana", "bob"}, models.KindHalf, models.OptionMerge)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, "no-such-id"), models.ErrReservationNotFound)
}

func TestEnsureSlotsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.EnsureSlots(ctx, 20))
	}
	views, err := store.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, views, 20)
}

func TestSweepReportsStorageFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	require.NoError(t, store.EnsureSlots(ctx, 1))
	svc := NewCourtService(store, failingReservations{}, store, nil, time.Hour, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Sweep(ctx)
	assert.Error(t, err)
}

type failingReservations struct{}

var errStorage = errors.New("storage unavailable")

func (failingReservations) CreateWithCourt(context.Context, *models.Reservation) error {
	return errStorage
}
func (failingReservations) MergeIntoFull(context.Context, int, []string) (*models.Reservation, error) {
	return nil, errStorage
}
func (failingReservations) Release(context.Context, int) error { return errStorage }
func (failingReservations) CancelByID(context.Context, string) (int, error) {
	return 0, errStorage
}
func (failingReservations) ReleaseExpired(context.Context, time.Time) (int, error) {
	return 0, errStorage
}
func (failingReservations) ActiveParticipants(context.Context, time.Time) ([]models.ActiveUser, error) {
	return nil, errStorage
}
func (failingReservations) ListActive(context.Context, time.Time) ([]models.ActiveReservationView, error) {
	return nil, errStorage
}
