package repository

import (
	"context"
	"fmt"

	"court-queue-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QueueRepository handles database operations for the waitlist
type QueueRepository struct {
	db *pgxpool.Pool
}

// NewQueueRepository creates a new queue repository
func NewQueueRepository(db *pgxpool.Pool) *QueueRepository {
	return &QueueRepository{db: db}
}

// Create inserts a new waitlist entry
func (r *QueueRepository) Create(ctx context.Context, entry *models.QueueEntry) error {
	query := `
		INSERT INTO queue_entries (id, participants, kind, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.Participants, entry.Kind, entry.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to create queue entry: %w", err)
	}
	return nil
}

// AnyWaiting reports whether any of the given players already has a
// waitlist entry
func (r *QueueRepository) AnyWaiting(ctx context.Context, names []string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM queue_entries WHERE participants && $1::text[])`
	var exists bool
	if err := r.db.QueryRow(ctx, query, names).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check queue membership: %w", err)
	}
	return exists, nil
}

// List returns waitlist entries ordered by join time
func (r *QueueRepository) List(ctx context.Context) ([]models.QueueEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, participants, kind, joined_at
		FROM queue_entries
		ORDER BY joined_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	defer rows.Close()

	var entries []models.QueueEntry
	for rows.Next() {
		var e models.QueueEntry
		if err := rows.Scan(&e.ID, &e.Participants, &e.Kind, &e.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
