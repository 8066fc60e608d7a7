package models

import "errors"

// Court and reservation state errors
var (
	ErrCourtNotFound       = errors.New("court not found")
	ErrCourtNotAvailable   = errors.New("court is not available")
	ErrCourtNotInUse       = errors.New("court is not in use")
	ErrNotHalfCourt        = errors.New("can only merge into a half court")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Player validation errors; callers wrap these with the offending names
var (
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrDuplicatePlayers = errors.New("each player must be unique")
	ErrInvalidKind      = errors.New(`kind must be either "half" or "full"`)
	ErrInvalidOption    = errors.New(`half court reservation requires option "merge" or "queue"`)
	ErrWrongPlayerCount = errors.New("wrong number of players")
	ErrUnknownPlayers   = errors.New("players not registered or expired")
	ErrBusyPlayers      = errors.New("players already in active courts")
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNamePoolExhausted = errors.New("no more display names available today")
	ErrAlreadyQueued     = errors.New("one or more players already in queue")
)
