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

// UserRepository handles database operations for ephemeral user identities
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user identity
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, phone_number, animal_name, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.PhoneNumber, user.AnimalName, user.CreatedAt, user.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetActiveByPhone retrieves the identity registered for a phone number
// since the given day start
func (r *UserRepository) GetActiveByPhone(ctx context.Context, phone string, dayStart time.Time) (*models.User, error) {
	query := `
		SELECT id, phone_number, animal_name, created_at, expires_at
		FROM users
		WHERE phone_number = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, phone, dayStart).Scan(
		&user.ID, &user.PhoneNumber, &user.AnimalName, &user.CreatedAt, &user.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return &user, nil
}

// DeleteStaleByPhone removes prior-day identities for a phone number
func (r *UserRepository) DeleteStaleByPhone(ctx context.Context, phone string, dayStart time.Time) error {
	query := `DELETE FROM users WHERE phone_number = $1 AND created_at < $2`
	if _, err := r.db.Exec(ctx, query, phone, dayStart); err != nil {
		return fmt.Errorf("failed to delete stale users: %w", err)
	}
	return nil
}

// DeleteExpired removes every identity whose day has rolled over
func (r *UserRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired users: %w", err)
	}
	return result.RowsAffected(), nil
}

// UsedNames returns the display names held by identities registered since
// the given day start
func (r *UserRepository) UsedNames(ctx context.Context, dayStart time.Time) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT animal_name FROM users WHERE created_at >= $1`, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query used names: %w", err)
	}
	defer rows.Close()

	used := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		used[name] = struct{}{}
	}
	return used, rows.Err()
}

// ActiveNames returns which of the given display names belong to an
// unexpired identity
func (r *UserRepository) ActiveNames(ctx context.Context, names []string, now time.Time) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx,
		`SELECT animal_name FROM users WHERE animal_name = ANY($1) AND expires_at > $2`,
		names, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query active names: %w", err)
	}
	defer rows.Close()

	active := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		active[name] = struct{}{}
	}
	return active, rows.Err()
}

// ListRegisteredSince returns every identity created since the given day start
func (r *UserRepository) ListRegisteredSince(ctx context.Context, dayStart time.Time) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, phone_number, animal_name, created_at, expires_at
		FROM users
		WHERE created_at >= $1
		ORDER BY created_at`,
		dayStart,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.PhoneNumber, &u.AnimalName, &u.CreatedAt, &u.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
