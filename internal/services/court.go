package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"court-queue-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CourtStore is the persistence surface for court slots
type CourtStore interface {
	EnsureSlots(ctx context.Context, n int) error
	Get(ctx context.Context, number int) (*models.Court, error)
	List(ctx context.Context, visibleOnly bool) ([]models.CourtView, error)
	ToggleVisibility(ctx context.Context, number int) (*models.Court, error)
}

// ReservationStore is the persistence surface for reservations. Its
// mutating methods are transactional: the court precondition is
// re-validated under a row lock before any write.
type ReservationStore interface {
	CreateWithCourt(ctx context.Context, res *models.Reservation) error
	MergeIntoFull(ctx context.Context, courtNumber int, newNames []string) (*models.Reservation, error)
	Release(ctx context.Context, courtNumber int) error
	CancelByID(ctx context.Context, id string) (int, error)
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
	ActiveParticipants(ctx context.Context, now time.Time) ([]models.ActiveUser, error)
	ListActive(ctx context.Context, now time.Time) ([]models.ActiveReservationView, error)
}

// CourtNotifier receives the refreshed court list after a state change
type CourtNotifier interface {
	BroadcastCourts(courts []models.CourtView)
}

// CourtService is the availability engine: it validates reservation
// requests against the user directory and the busy set, and drives the
// court state machine Free -> Occupied(half) -> Occupied(full) -> Free.
type CourtService struct {
	courts       CourtStore
	reservations ReservationStore
	users        UserStore
	notifier     CourtNotifier
	duration     time.Duration
	loc          *time.Location
	now          func() time.Time
}

// NewCourtService creates a new court service. duration is the canonical
// reservation lifetime; notifier may be nil.
func NewCourtService(
	courts CourtStore,
	reservations ReservationStore,
	users UserStore,
	notifier CourtNotifier,
	duration time.Duration,
	loc *time.Location,
) *CourtService {
	return &CourtService{
		courts:       courts,
		reservations: reservations,
		users:        users,
		notifier:     notifier,
		duration:     duration,
		loc:          loc,
		now:          time.Now,
	}
}

// Reserve creates a reservation on a free court. Validation order matches
// the user-facing contract: shape first, then identities, then the busy
// set. The court availability itself is re-checked inside the store
// transaction, so two concurrent calls cannot both occupy the same court.
func (s *CourtService) Reserve(ctx context.Context, courtNumber int, rawNames []string, kind models.ReservationKind, option models.ReservationOption) (*models.Reservation, error) {
	s.sweep(ctx)

	names := NormalizeNames(rawNames)
	if err := checkDistinct(names); err != nil {
		return nil, err
	}

	if kind != models.KindHalf && kind != models.KindFull {
		return nil, models.ErrInvalidKind
	}
	var opt *models.ReservationOption
	if kind == models.KindHalf {
		if option != models.OptionMerge && option != models.OptionQueue {
			return nil, models.ErrInvalidOption
		}
		opt = &option
	}

	if len(names) != kind.PlayersFor() {
		return nil, fmt.Errorf("%w: %s court requires exactly %d players",
			models.ErrWrongPlayerCount, kind, kind.PlayersFor())
	}

	if err := s.checkRegistered(ctx, names); err != nil {
		return nil, err
	}
	if err := s.checkNotBusy(ctx, names); err != nil {
		return nil, err
	}

	now := s.now()
	res := &models.Reservation{
		ID:           uuid.New().String(),
		CourtNumber:  courtNumber,
		Participants: names,
		Kind:         kind,
		Option:       opt,
		StartTime:    now,
		EndTime:      now.Add(s.duration),
	}
	if err := s.reservations.CreateWithCourt(ctx, res); err != nil {
		return nil, err
	}

	log.Info().
		Int("court", courtNumber).
		Strs("players", names).
		Str("kind", string(kind)).
		Msg("Reservation created")

	s.broadcast(ctx)
	return res, nil
}

// Merge adds two players to a half-court reservation and promotes it to
// a full court
func (s *CourtService) Merge(ctx context.Context, courtNumber int, rawNames []string) (*models.Reservation, error) {
	s.sweep(ctx)

	names := NormalizeNames(rawNames)
	if len(names) != 2 {
		return nil, fmt.Errorf("%w: merging requires exactly 2 players", models.ErrWrongPlayerCount)
	}
	if err := checkDistinct(names); err != nil {
		return nil, err
	}

	if err := s.checkRegistered(ctx, names); err != nil {
		return nil, err
	}
	if err := s.checkNotBusy(ctx, names); err != nil {
		return nil, err
	}

	res, err := s.reservations.MergeIntoFull(ctx, courtNumber, names)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("court", courtNumber).
		Strs("joined", names).
		Msg("Half court merged into full court")

	s.broadcast(ctx)
	return res, nil
}

// List returns the court board after sweeping expired reservations
func (s *CourtService) List(ctx context.Context, visibleOnly bool) ([]models.CourtView, error) {
	s.sweep(ctx)
	return s.courts.List(ctx, visibleOnly)
}

// ActiveReservations returns unexpired reservations ordered by time remaining
func (s *CourtService) ActiveReservations(ctx context.Context) ([]models.ActiveReservationView, error) {
	s.sweep(ctx)
	return s.reservations.ListActive(ctx, s.now())
}

// ActiveUsers returns every participant of an unexpired reservation
func (s *CourtService) ActiveUsers(ctx context.Context) ([]models.ActiveUser, error) {
	s.sweep(ctx)
	return s.reservations.ActiveParticipants(ctx, s.now())
}

// IdleUsers returns identities registered today that are not in any
// unexpired reservation
func (s *CourtService) IdleUsers(ctx context.Context) ([]models.IdleUser, error) {
	s.sweep(ctx)

	now := s.now()
	local := now.In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	registered, err := s.users.ListRegisteredSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	active, err := s.reservations.ActiveParticipants(ctx, now)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]struct{}, len(active))
	for _, a := range active {
		busy[a.Username] = struct{}{}
	}

	var idle []models.IdleUser
	for _, u := range registered {
		if _, ok := busy[u.AnimalName]; ok {
			continue
		}
		idle = append(idle, models.IdleUser{
			AnimalName:  u.AnimalName,
			PhoneNumber: u.PhoneNumber,
			CreatedAt:   u.CreatedAt,
		})
	}
	return idle, nil
}

// ValidatePlayers checks a set of raw names against the user directory
// and the busy set, mirroring the pre-reservation client check
func (s *CourtService) ValidatePlayers(ctx context.Context, rawNames []string) (*models.PlayerValidation, error) {
	s.sweep(ctx)

	names := NormalizeNames(rawNames)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no players provided", models.ErrWrongPlayerCount)
	}
	if err := checkDistinct(names); err != nil {
		return nil, err
	}

	now := s.now()
	registered, err := s.users.ActiveNames(ctx, names, now)
	if err != nil {
		return nil, err
	}
	busySet, err := s.busySet(ctx, now)
	if err != nil {
		return nil, err
	}

	var unknown, busy []string
	for _, name := range names {
		if _, ok := registered[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		if _, ok := busySet[name]; ok {
			busy = append(busy, name)
		}
	}

	result := &models.PlayerValidation{
		Valid:   len(unknown) == 0 && len(busy) == 0,
		Unknown: unknown,
		Busy:    busy,
	}
	switch {
	case len(unknown) > 0:
		result.Message = "The following players are not registered or have expired: " + strings.Join(unknown, ", ")
	case len(busy) > 0:
		result.Message = "The following players are already in active courts: " + strings.Join(busy, ", ")
	default:
		result.Message = "All players are valid"
	}
	return result, nil
}

// Cancel tears down a reservation by its ID and frees the court. This is
// the player-facing withdrawal path; expiry and admin reset are the others.
func (s *CourtService) Cancel(ctx context.Context, reservationID string) error {
	courtNumber, err := s.reservations.CancelByID(ctx, reservationID)
	if err != nil {
		return err
	}
	log.Info().
		Str("reservation_id", reservationID).
		Int("court", courtNumber).
		Msg("Reservation cancelled")
	s.broadcast(ctx)
	return nil
}

// ForceRelease unconditionally tears down a court's reservation (admin
// path) and returns the freed court
func (s *CourtService) ForceRelease(ctx context.Context, courtNumber int) (*models.Court, error) {
	if err := s.reservations.Release(ctx, courtNumber); err != nil {
		return nil, err
	}
	court, err := s.courts.Get(ctx, courtNumber)
	if err != nil {
		return nil, err
	}
	log.Info().Int("court", courtNumber).Msg("Court force released")
	s.broadcast(ctx)
	return court, nil
}

// ToggleVisibility flips a court's visibility flag (admin path)
func (s *CourtService) ToggleVisibility(ctx context.Context, courtNumber int) (*models.Court, error) {
	court, err := s.courts.ToggleVisibility(ctx, courtNumber)
	if err != nil {
		return nil, err
	}
	s.broadcast(ctx)
	return court, nil
}

// Sweep releases every court whose reservation has expired. It is run
// opportunistically on reads and periodically by the scheduler.
func (s *CourtService) Sweep(ctx context.Context) (int, error) {
	released, err := s.reservations.ReleaseExpired(ctx, s.now())
	if err != nil {
		return released, err
	}
	if released > 0 {
		log.Info().Int("released", released).Msg("Expired reservations swept")
		s.broadcast(ctx)
	}
	return released, nil
}

// sweep is the best-effort variant used on read paths: a failed sweep
// must not fail the read
func (s *CourtService) sweep(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		log.Error().Err(err).Msg("Expiry sweep failed")
	}
}

func (s *CourtService) checkRegistered(ctx context.Context, names []string) error {
	registered, err := s.users.ActiveNames(ctx, names, s.now())
	if err != nil {
		return err
	}
	var unknown []string
	for _, name := range names {
		if _, ok := registered[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", models.ErrUnknownPlayers, strings.Join(unknown, ", "))
	}
	return nil
}

func (s *CourtService) checkNotBusy(ctx context.Context, names []string) error {
	busySet, err := s.busySet(ctx, s.now())
	if err != nil {
		return err
	}
	var busy []string
	for _, name := range names {
		if _, ok := busySet[name]; ok {
			busy = append(busy, name)
		}
	}
	if len(busy) > 0 {
		return fmt.Errorf("%w: %s", models.ErrBusyPlayers, strings.Join(busy, ", "))
	}
	return nil
}

// busySet is the set of names occupying any unexpired reservation
func (s *CourtService) busySet(ctx context.Context, now time.Time) (map[string]struct{}, error) {
	active, err := s.reservations.ActiveParticipants(ctx, now)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(active))
	for _, a := range active {
		set[a.Username] = struct{}{}
	}
	return set, nil
}

func (s *CourtService) broadcast(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	courts, err := s.courts.List(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load courts for broadcast")
		return
	}
	s.notifier.BroadcastCourts(courts)
}

func checkDistinct(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return models.ErrDuplicatePlayers
		}
		seen[name] = struct{}{}
	}
	return nil
}
