package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"court-queue-backend/internal/models"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"
)

const phoneRegion = "US"

// UserStore is the persistence surface the user directory needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetActiveByPhone(ctx context.Context, phone string, dayStart time.Time) (*models.User, error)
	DeleteStaleByPhone(ctx context.Context, phone string, dayStart time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	UsedNames(ctx context.Context, dayStart time.Time) (map[string]struct{}, error)
	ActiveNames(ctx context.Context, names []string, now time.Time) (map[string]struct{}, error)
	ListRegisteredSince(ctx context.Context, dayStart time.Time) ([]models.User, error)
}

// UserService hands out ephemeral per-day identities keyed by phone number
type UserService struct {
	users UserStore
	loc   *time.Location
	now   func() time.Time
}

// NewUserService creates a new user service. loc is the timezone whose
// calendar day bounds identity lifetimes.
func NewUserService(users UserStore, loc *time.Location) *UserService {
	return &UserService{
		users: users,
		loc:   loc,
		now:   time.Now,
	}
}

// Register returns the identity for a phone number, creating one with a
// fresh display name when none is active today. The second return value
// reports whether the identity already existed.
func (s *UserService) Register(ctx context.Context, rawPhone string) (*models.User, bool, error) {
	phone, err := s.normalizePhone(rawPhone)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	dayStart, dayEnd := s.dayBounds(now)

	existing, err := s.users.GetActiveByPhone(ctx, phone, dayStart)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	// New registration: drop prior-day rows for this phone and take the
	// opportunity to purge everything else that has expired.
	if err := s.users.DeleteStaleByPhone(ctx, phone, dayStart); err != nil {
		return nil, false, err
	}
	if purged, err := s.users.DeleteExpired(ctx, now); err != nil {
		return nil, false, err
	} else if purged > 0 {
		log.Debug().Int64("purged", purged).Msg("Removed expired identities")
	}

	name, err := s.pickUnusedName(ctx, dayStart)
	if err != nil {
		return nil, false, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		PhoneNumber: phone,
		AnimalName:  name,
		CreatedAt:   now,
		ExpiresAt:   dayEnd,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

// IsActive reports whether a display name belongs to an unexpired identity
func (s *UserService) IsActive(ctx context.Context, displayName string) (bool, error) {
	name := NormalizeName(displayName)
	active, err := s.users.ActiveNames(ctx, []string{name}, s.now())
	if err != nil {
		return false, err
	}
	_, ok := active[name]
	return ok, nil
}

// PurgeExpired removes identities whose day has rolled over
func (s *UserService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.users.DeleteExpired(ctx, s.now())
}

func (s *UserService) normalizePhone(rawPhone string) (string, error) {
	num, err := phonenumbers.Parse(rawPhone, phoneRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %s", models.ErrInvalidPhone, rawPhone)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %s", models.ErrInvalidPhone, rawPhone)
	}
	return strconv.FormatUint(num.GetNationalNumber(), 10), nil
}

// pickUnusedName draws a uniformly random display name not held by any
// identity registered today
func (s *UserService) pickUnusedName(ctx context.Context, dayStart time.Time) (string, error) {
	used, err := s.users.UsedNames(ctx, dayStart)
	if err != nil {
		return "", err
	}

	available := make([]string, 0, len(animalNames))
	for _, name := range animalNames {
		if _, taken := used[name]; !taken {
			available = append(available, name)
		}
	}
	if len(available) == 0 {
		return "", models.ErrNamePoolExhausted
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(available))))
	if err != nil {
		return "", fmt.Errorf("failed to pick display name: %w", err)
	}
	return available[n.Int64()], nil
}

// dayBounds returns the start and end of the calendar day containing t
// in the service timezone
func (s *UserService) dayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// NormalizeName converts a raw player name to its canonical form:
// first letter upper-cased, the rest lower-cased.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}

// NormalizeNames applies NormalizeName to every element, dropping empties
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if normalized := NormalizeName(n); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}
