package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"court-queue-backend/internal/models"
)

// fakeStore is an in-memory stand-in for the pgx repositories. It keeps
// the same semantics the SQL layer guarantees (availability re-checked
// before create, expiry re-checked before release) so the engine tests
// exercise the real decision logic.
type fakeStore struct {
	mu           sync.Mutex
	courts       map[int]*models.Court
	reservations map[string]*models.Reservation
	users        map[string]models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courts:       make(map[int]*models.Court),
		reservations: make(map[string]*models.Reservation),
		users:        make(map[string]models.User),
	}
}

func (f *fakeStore) addUser(name string, createdAt, expiresAt time.Time) {
	f.users[name] = models.User{
		ID:          name,
		PhoneNumber: "2025550100",
		AnimalName:  name,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
	}
}

// CourtStore

func (f *fakeStore) EnsureSlots(_ context.Context, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 1; i <= n; i++ {
		if _, ok := f.courts[i]; !ok {
			f.courts[i] = &models.Court{Number: i, IsAvailable: true, IsVisible: true}
		}
	}
	return nil
}

func (f *fakeStore) Get(_ context.Context, number int) (*models.Court, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	court, ok := f.courts[number]
	if !ok {
		return nil, models.ErrCourtNotFound
	}
	copied := *court
	return &copied, nil
}

func (f *fakeStore) List(_ context.Context, visibleOnly bool) ([]models.CourtView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	numbers := make([]int, 0, len(f.courts))
	for n := range f.courts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var views []models.CourtView
	for _, n := range numbers {
		court := f.courts[n]
		if visibleOnly && !court.IsVisible {
			continue
		}
		view := models.CourtView{
			Number:      court.Number,
			IsAvailable: court.IsAvailable,
			IsVisible:   court.IsVisible,
		}
		if court.CurrentReservationID != nil {
			res := f.reservations[*court.CurrentReservationID]
			view.CurrentReservation = &models.ReservationSummary{
				Participants: res.Participants,
				Kind:         res.Kind,
				Option:       res.Option,
				StartTime:    res.StartTime,
				EndTime:      res.EndTime,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (f *fakeStore) ToggleVisibility(_ context.Context, number int) (*models.Court, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	court, ok := f.courts[number]
	if !ok {
		return nil, models.ErrCourtNotFound
	}
	court.IsVisible = !court.IsVisible
	copied := *court
	return &copied, nil
}

// ReservationStore

func (f *fakeStore) CreateWithCourt(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	court, ok := f.courts[res.CourtNumber]
	if !ok {
		return models.ErrCourtNotFound
	}
	if !court.IsAvailable {
		return models.ErrCourtNotAvailable
	}
	stored := *res
	f.reservations[res.ID] = &stored
	court.IsAvailable = false
	court.CurrentReservationID = &stored.ID
	return nil
}

func (f *fakeStore) MergeIntoFull(_ context.Context, courtNumber int, newNames []string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	court, ok := f.courts[courtNumber]
	if !ok {
		return nil, models.ErrCourtNotFound
	}
	if court.IsAvailable || court.CurrentReservationID == nil {
		return nil, models.ErrCourtNotInUse
	}
	res := f.reservations[*court.CurrentReservationID]
	if res.Kind != models.KindHalf {
		return nil, models.ErrNotHalfCourt
	}
	res.Participants = append(res.Participants, newNames...)
	res.Kind = models.KindFull
	copied := *res
	return &copied, nil
}

func (f *fakeStore) Release(_ context.Context, courtNumber int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	court, ok := f.courts[courtNumber]
	if !ok {
		return models.ErrCourtNotFound
	}
	if court.CurrentReservationID != nil {
		delete(f.reservations, *court.CurrentReservationID)
	}
	court.IsAvailable = true
	court.CurrentReservationID = nil
	return nil
}

func (f *fakeStore) CancelByID(_ context.Context, id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, court := range f.courts {
		if court.CurrentReservationID == nil || *court.CurrentReservationID != id {
			continue
		}
		delete(f.reservations, id)
		court.IsAvailable = true
		court.CurrentReservationID = nil
		return court.Number, nil
	}
	return 0, models.ErrReservationNotFound
}

func (f *fakeStore) ReleaseExpired(_ context.Context, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	released := 0
	for _, court := range f.courts {
		if court.CurrentReservationID == nil {
			continue
		}
		res := f.reservations[*court.CurrentReservationID]
		if res.IsExpired(now) {
			delete(f.reservations, res.ID)
			court.IsAvailable = true
			court.CurrentReservationID = nil
			released++
		}
	}
	return released, nil
}

func (f *fakeStore) ActiveParticipants(_ context.Context, now time.Time) ([]models.ActiveUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	numbers := make([]int, 0, len(f.courts))
	for n := range f.courts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var active []models.ActiveUser
	for _, n := range numbers {
		court := f.courts[n]
		if court.CurrentReservationID == nil {
			continue
		}
		res := f.reservations[*court.CurrentReservationID]
		if res.IsExpired(now) {
			continue
		}
		for _, name := range res.Participants {
			active = append(active, models.ActiveUser{
				Username:    name,
				CourtNumber: n,
				StartTime:   res.StartTime,
			})
		}
	}
	return active, nil
}

func (f *fakeStore) ListActive(_ context.Context, now time.Time) ([]models.ActiveReservationView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []models.ActiveReservationView
	for n, court := range f.courts {
		if court.CurrentReservationID == nil {
			continue
		}
		res := f.reservations[*court.CurrentReservationID]
		if res.IsExpired(now) {
			continue
		}
		views = append(views, models.ActiveReservationView{
			CourtNumber:   n,
			Participants:  res.Participants,
			Kind:          res.Kind,
			StartTime:     res.StartTime,
			EndTime:       res.EndTime,
			TimeRemaining: res.EndTime.Sub(now).Milliseconds(),
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].TimeRemaining < views[j].TimeRemaining
	})
	return views, nil
}

// UserStore

func (f *fakeStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.AnimalName] = *user
	return nil
}

func (f *fakeStore) GetActiveByPhone(_ context.Context, phone string, dayStart time.Time) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.PhoneNumber == phone && !u.CreatedAt.Before(dayStart) {
			copied := u
			return &copied, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeStore) DeleteStaleByPhone(_ context.Context, phone string, dayStart time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, u := range f.users {
		if u.PhoneNumber == phone && u.CreatedAt.Before(dayStart) {
			delete(f.users, name)
		}
	}
	return nil
}

func (f *fakeStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var purged int64
	for name, u := range f.users {
		if !u.ExpiresAt.After(now) {
			delete(f.users, name)
			purged++
		}
	}
	return purged, nil
}

func (f *fakeStore) UsedNames(_ context.Context, dayStart time.Time) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	used := make(map[string]struct{})
	for name, u := range f.users {
		if !u.CreatedAt.Before(dayStart) {
			used[name] = struct{}{}
		}
	}
	return used, nil
}

func (f *fakeStore) ActiveNames(_ context.Context, names []string, now time.Time) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	active := make(map[string]struct{})
	for _, name := range names {
		if u, ok := f.users[name]; ok && u.ExpiresAt.After(now) {
			active[name] = struct{}{}
		}
	}
	return active, nil
}

func (f *fakeStore) ListRegisteredSince(_ context.Context, dayStart time.Time) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []models.User
	for _, u := range f.users {
		if !u.CreatedAt.Before(dayStart) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].AnimalName < users[j].AnimalName })
	return users, nil
}
