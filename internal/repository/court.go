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

// CourtRepository handles database operations for courts
type CourtRepository struct {
	db *pgxpool.Pool
}

// NewCourtRepository creates a new court repository
func NewCourtRepository(db *pgxpool.Pool) *CourtRepository {
	return &CourtRepository{db: db}
}

// EnsureSlots idempotently creates court slots 1..n. Existing rows are
// left untouched, so repeated calls never duplicate or reset courts.
func (r *CourtRepository) EnsureSlots(ctx context.Context, n int) error {
	query := `
		INSERT INTO courts (number, is_available, is_visible, current_reservation_id)
		SELECT s, TRUE, TRUE, NULL FROM generate_series(1, $1) AS s
		ON CONFLICT (number) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, n); err != nil {
		return fmt.Errorf("failed to ensure court slots: %w", err)
	}
	return nil
}

// Get retrieves a court by number
func (r *CourtRepository) Get(ctx context.Context, number int) (*models.Court, error) {
	query := `
		SELECT number, is_available, is_visible, current_reservation_id
		FROM courts
		WHERE number = $1
	`
	var court models.Court
	err := r.db.QueryRow(ctx, query, number).Scan(
		&court.Number, &court.IsAvailable, &court.IsVisible, &court.CurrentReservationID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}
	return &court, nil
}

// List returns courts ordered by number with a denormalized reservation
// summary for occupied slots. When visibleOnly is set, hidden courts are
// filtered out.
func (r *CourtRepository) List(ctx context.Context, visibleOnly bool) ([]models.CourtView, error) {
	query := `
		SELECT c.number, c.is_available, c.is_visible,
		       r.participants, r.kind, r.option, r.start_time, r.end_time
		FROM courts c
		LEFT JOIN reservations r ON r.id = c.current_reservation_id
		WHERE NOT $1 OR c.is_visible
		ORDER BY c.number
	`
	rows, err := r.db.Query(ctx, query, visibleOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	defer rows.Close()

	var courts []models.CourtView
	for rows.Next() {
		var (
			view         models.CourtView
			participants []string
			kind         *models.ReservationKind
			option       *models.ReservationOption
			startTime    *time.Time
			endTime      *time.Time
		)
		if err := rows.Scan(
			&view.Number, &view.IsAvailable, &view.IsVisible,
			&participants, &kind, &option, &startTime, &endTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan court: %w", err)
		}
		if kind != nil {
			view.CurrentReservation = &models.ReservationSummary{
				Participants: participants,
				Kind:         *kind,
				Option:       option,
				StartTime:    *startTime,
				EndTime:      *endTime,
			}
		}
		courts = append(courts, view)
	}
	return courts, rows.Err()
}

// ToggleVisibility flips the visibility flag of a court
func (r *CourtRepository) ToggleVisibility(ctx context.Context, number int) (*models.Court, error) {
	query := `
		UPDATE courts
		SET is_visible = NOT is_visible
		WHERE number = $1
		RETURNING number, is_available, is_visible, current_reservation_id
	`
	var court models.Court
	err := r.db.QueryRow(ctx, query, number).Scan(
		&court.Number, &court.IsAvailable, &court.IsVisible, &court.CurrentReservationID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to toggle court visibility: %w", err)
	}
	return &court, nil
}
