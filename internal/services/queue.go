package services

import (
	"context"
	"time"

	"court-queue-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// QueueStore is the persistence surface for the waitlist
type QueueStore interface {
	Create(ctx context.Context, entry *models.QueueEntry) error
	AnyWaiting(ctx context.Context, names []string) (bool, error)
	List(ctx context.Context) ([]models.QueueEntry, error)
}

// QueueService manages the waitlist of players without a court
type QueueService struct {
	queue QueueStore
	now   func() time.Time
}

// NewQueueService creates a new queue service
func NewQueueService(queue QueueStore) *QueueService {
	return &QueueService{
		queue: queue,
		now:   time.Now,
	}
}

// Join adds a group of players to the waitlist. Players already waiting
// cannot join again.
func (s *QueueService) Join(ctx context.Context, rawNames []string, kind models.ReservationKind) (*models.QueueEntry, error) {
	names := NormalizeNames(rawNames)
	if len(names) == 0 {
		return nil, models.ErrWrongPlayerCount
	}
	if err := checkDistinct(names); err != nil {
		return nil, err
	}
	if kind != models.KindHalf && kind != models.KindFull {
		return nil, models.ErrInvalidKind
	}

	waiting, err := s.queue.AnyWaiting(ctx, names)
	if err != nil {
		return nil, err
	}
	if waiting {
		return nil, models.ErrAlreadyQueued
	}

	entry := &models.QueueEntry{
		ID:           uuid.New().String(),
		Participants: names,
		Kind:         kind,
		JoinedAt:     s.now(),
	}
	if err := s.queue.Create(ctx, entry); err != nil {
		return nil, err
	}

	log.Info().
		Strs("players", names).
		Str("kind", string(kind)).
		Msg("Players joined waitlist")

	return entry, nil
}

// Waiting returns waitlist entries ordered by join time
func (s *QueueService) Waiting(ctx context.Context) ([]models.QueueEntry, error) {
	return s.queue.List(ctx)
}
