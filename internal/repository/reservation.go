package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"court-queue-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepository handles database operations for reservations.
// Every mutation that touches a court together with its reservation runs
// in a single transaction with the court row locked, so the availability
// precondition is re-validated after the lock is held.
type ReservationRepository struct {
	db *pgxpool.Pool
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateWithCourt inserts a reservation and flips its court to occupied as
// one atomic unit. The court's availability is re-checked under the row
// lock; two concurrent calls against the same free court cannot both win.
func (r *ReservationRepository) CreateWithCourt(ctx context.Context, res *models.Reservation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var available bool
	err = tx.QueryRow(ctx,
		`SELECT is_available FROM courts WHERE number = $1 FOR UPDATE`,
		res.CourtNumber,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrCourtNotFound
		}
		return fmt.Errorf("failed to lock court: %w", err)
	}
	if !available {
		return models.ErrCourtNotAvailable
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reservations (id, court_number, participants, kind, option, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID, res.CourtNumber, res.Participants, res.Kind, res.Option, res.StartTime, res.EndTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE courts SET is_available = FALSE, current_reservation_id = $1 WHERE number = $2`,
		res.ID, res.CourtNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to occupy court: %w", err)
	}

	return tx.Commit(ctx)
}

// MergeIntoFull appends two players to the half-court reservation on the
// given court and promotes it to a full court, under the court row lock.
func (r *ReservationRepository) MergeIntoFull(ctx context.Context, courtNumber int, newNames []string) (*models.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The joined reservation columns are NULL for a free court, so they
	// scan into nullable holders and are only read once the court is
	// known to be occupied.
	var (
		available    bool
		resID        *string
		participants []string
		kind         *models.ReservationKind
		option       *models.ReservationOption
		startTime    *time.Time
		endTime      *time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT c.is_available, c.current_reservation_id,
		       r.participants, r.kind, r.option, r.start_time, r.end_time
		FROM courts c
		LEFT JOIN reservations r ON r.id = c.current_reservation_id
		WHERE c.number = $1
		FOR UPDATE OF c`,
		courtNumber,
	).Scan(&available, &resID, &participants, &kind, &option, &startTime, &endTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to lock court: %w", err)
	}
	if available || resID == nil || kind == nil {
		return nil, models.ErrCourtNotInUse
	}
	if *kind != models.KindHalf {
		return nil, models.ErrNotHalfCourt
	}

	res := models.Reservation{
		ID:           *resID,
		CourtNumber:  courtNumber,
		Participants: append(participants, newNames...),
		Kind:         models.KindFull,
		Option:       option,
		StartTime:    *startTime,
		EndTime:      *endTime,
	}

	_, err = tx.Exec(ctx,
		`UPDATE reservations SET participants = $1, kind = $2 WHERE id = $3`,
		res.Participants, res.Kind, res.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to merge reservation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &res, nil
}

// Release unconditionally clears a court and deletes its reservation,
// regardless of expiry state. Used by the admin reset path.
func (r *ReservationRepository) Release(ctx context.Context, courtNumber int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var resID *string
	err = tx.QueryRow(ctx,
		`SELECT current_reservation_id FROM courts WHERE number = $1 FOR UPDATE`,
		courtNumber,
	).Scan(&resID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrCourtNotFound
		}
		return fmt.Errorf("failed to lock court: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE courts SET is_available = TRUE, current_reservation_id = NULL WHERE number = $1`,
		courtNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to release court: %w", err)
	}

	if resID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, *resID); err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// CancelByID deletes a reservation and frees its court, locating the
// court by the reservation it currently holds. The court row is locked
// so a cancel racing a merge or sweep sees a consistent state. Returns
// the freed court number.
func (r *ReservationRepository) CancelByID(ctx context.Context, id string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var courtNumber int
	err = tx.QueryRow(ctx, `
		SELECT c.number
		FROM courts c
		JOIN reservations r ON r.id = c.current_reservation_id
		WHERE r.id = $1
		FOR UPDATE OF c`,
		id,
	).Scan(&courtNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrReservationNotFound
		}
		return 0, fmt.Errorf("failed to lock court: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE courts SET is_available = TRUE, current_reservation_id = NULL WHERE number = $1`,
		courtNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to release court: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id); err != nil {
		return 0, fmt.Errorf("failed to delete reservation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return courtNumber, nil
}

// ReleaseExpired clears every court whose reservation ended at or before
// now, deleting the reservations. Each court is released in its own
// transaction with the expiry re-checked under the lock, so a reservation
// created between the scan and the release is never torn down.
func (r *ReservationRepository) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.number
		FROM courts c
		JOIN reservations r ON r.id = c.current_reservation_id
		WHERE r.end_time <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired reservations: %w", err)
	}
	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan court number: %w", err)
		}
		numbers = append(numbers, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	released := 0
	for _, number := range numbers {
		ok, err := r.releaseIfExpired(ctx, number, now)
		if err != nil {
			return released, err
		}
		if ok {
			released++
		}
	}
	return released, nil
}

func (r *ReservationRepository) releaseIfExpired(ctx context.Context, courtNumber int, now time.Time) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		resID   *string
		endTime *time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT c.current_reservation_id, r.end_time
		FROM courts c
		LEFT JOIN reservations r ON r.id = c.current_reservation_id
		WHERE c.number = $1
		FOR UPDATE OF c`,
		courtNumber,
	).Scan(&resID, &endTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock court: %w", err)
	}
	if resID == nil || endTime == nil || endTime.After(now) {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE courts SET is_available = TRUE, current_reservation_id = NULL WHERE number = $1`,
		courtNumber,
	); err != nil {
		return false, fmt.Errorf("failed to release court: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, *resID); err != nil {
		return false, fmt.Errorf("failed to delete reservation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ActiveParticipants returns every participant of an unexpired reservation,
// tagged with their court number and start time.
func (r *ReservationRepository) ActiveParticipants(ctx context.Context, now time.Time) ([]models.ActiveUser, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.number, r.participants, r.start_time
		FROM courts c
		JOIN reservations r ON r.id = c.current_reservation_id
		WHERE NOT c.is_available AND r.end_time > $1
		ORDER BY c.number`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query active participants: %w", err)
	}
	defer rows.Close()

	var active []models.ActiveUser
	for rows.Next() {
		var (
			number       int
			participants []string
			startTime    time.Time
		)
		if err := rows.Scan(&number, &participants, &startTime); err != nil {
			return nil, fmt.Errorf("failed to scan active participants: %w", err)
		}
		for _, name := range participants {
			active = append(active, models.ActiveUser{
				Username:    name,
				CourtNumber: number,
				StartTime:   startTime,
			})
		}
	}
	return active, rows.Err()
}

// ListActive returns unexpired reservations ordered by time remaining
func (r *ReservationRepository) ListActive(ctx context.Context, now time.Time) ([]models.ActiveReservationView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.number, r.participants, r.kind, r.start_time, r.end_time
		FROM courts c
		JOIN reservations r ON r.id = c.current_reservation_id
		WHERE r.end_time > $1
		ORDER BY r.end_time`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}
	defer rows.Close()

	var views []models.ActiveReservationView
	for rows.Next() {
		var v models.ActiveReservationView
		if err := rows.Scan(&v.CourtNumber, &v.Participants, &v.Kind, &v.StartTime, &v.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan active reservation: %w", err)
		}
		v.TimeRemaining = v.EndTime.Sub(now).Milliseconds()
		if v.TimeRemaining < 0 {
			v.TimeRemaining = 0
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
