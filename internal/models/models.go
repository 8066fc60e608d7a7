package models

import "time"

// ReservationKind distinguishes half-court (2 players) from full-court (4 players)
type ReservationKind string

const (
	KindHalf ReservationKind = "half"
	KindFull ReservationKind = "full"
)

// ReservationOption tags how a half-court group wants to reach a full game.
// It is descriptive only and never branches engine behavior.
type ReservationOption string

const (
	OptionMerge ReservationOption = "merge"
	OptionQueue ReservationOption = "queue"
)

// PlayersFor returns the exact player count a reservation kind requires
func (k ReservationKind) PlayersFor() int {
	if k == KindHalf {
		return 2
	}
	return 4
}

// Court represents a numbered court slot
type Court struct {
	Number               int     `json:"number"`
	IsAvailable          bool    `json:"is_available"`
	IsVisible            bool    `json:"is_visible"`
	CurrentReservationID *string `json:"current_reservation_id,omitempty"`
}

// Reservation represents an active occupation of a court
type Reservation struct {
	ID           string             `json:"id"`
	CourtNumber  int                `json:"court_number"`
	Participants []string           `json:"participants"`
	Kind         ReservationKind    `json:"kind"`
	Option       *ReservationOption `json:"option,omitempty"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time"`
}

// IsExpired reports whether the reservation has run past its end time
func (r *Reservation) IsExpired(now time.Time) bool {
	return !now.Before(r.EndTime)
}

// ReservationSummary is the denormalized reservation shape attached to court views
type ReservationSummary struct {
	Participants []string           `json:"participants"`
	Kind         ReservationKind    `json:"kind"`
	Option       *ReservationOption `json:"option,omitempty"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time"`
}

// CourtView is a court with its reservation summary, as returned by list endpoints
type CourtView struct {
	Number             int                 `json:"number"`
	IsAvailable        bool                `json:"is_available"`
	IsVisible          bool                `json:"is_visible"`
	CurrentReservation *ReservationSummary `json:"current_reservation,omitempty"`
}

// User is an ephemeral per-day identity keyed by phone number
type User struct {
	ID          string    `json:"-"`
	PhoneNumber string    `json:"phone_number"`
	AnimalName  string    `json:"animal_name"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"-"`
}

// IsActive reports whether the identity is still valid
func (u *User) IsActive(now time.Time) bool {
	return now.Before(u.ExpiresAt)
}

// QueueEntry is a waitlist entry for players without a court
type QueueEntry struct {
	ID           string          `json:"id"`
	Participants []string        `json:"participants"`
	Kind         ReservationKind `json:"kind"`
	JoinedAt     time.Time       `json:"joined_at"`
}

// ActiveReservationView is the queue-board view of an unexpired reservation
type ActiveReservationView struct {
	CourtNumber   int             `json:"court_number"`
	Participants  []string        `json:"participants"`
	Kind          ReservationKind `json:"kind"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	TimeRemaining int64           `json:"time_remaining_ms"`
}

// ActiveUser is a participant of an unexpired reservation
type ActiveUser struct {
	Username    string    `json:"username"`
	CourtNumber int       `json:"court_number"`
	StartTime   time.Time `json:"start_time"`
}

// IdleUser is an identity registered today with no active reservation
type IdleUser struct {
	AnimalName  string    `json:"animal_name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerValidation is the result of checking a set of player names
type PlayerValidation struct {
	Valid   bool     `json:"valid"`
	Unknown []string `json:"unknown_players,omitempty"`
	Busy    []string `json:"busy_players,omitempty"`
	Message string   `json:"message"`
}
