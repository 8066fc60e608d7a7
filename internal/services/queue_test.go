package services

import (
	"context"
	"testing"
	"time"

	"court-queue-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	entries []models.QueueEntry
}

func (f *fakeQueue) Create(_ context.Context, entry *models.QueueEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeQueue) AnyWaiting(_ context.Context, names []string) (bool, error) {
	for _, e := range f.entries {
		for _, p := range e.Participants {
			for _, n := range names {
				if p == n {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (f *fakeQueue) List(_ context.Context) ([]models.QueueEntry, error) {
	return f.entries, nil
}

func TestQueueJoin(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	svc := NewQueueService(queue)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	entry, err := svc.Join(ctx, []string{"ana", "bob"}, models.KindHalf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Bob"}, entry.Participants)
	assert.Equal(t, now, entry.JoinedAt)

	// A player already waiting cannot join again, regardless of casing
	_, err = svc.Join(ctx, []string{"ANA", "cara"}, models.KindHalf)
	assert.ErrorIs(t, err, models.ErrAlreadyQueued)

	_, err = svc.Join(ctx, []string{"dan", "dan"}, models.KindHalf)
	assert.ErrorIs(t, err, models.ErrDuplicatePlayers)

	_, err = svc.Join(ctx, []string{"dan", "eve"}, "triples")
	assert.ErrorIs(t, err, models.ErrInvalidKind)

	_, err = svc.Join(ctx, nil, models.KindHalf)
	assert.ErrorIs(t, err, models.ErrWrongPlayerCount)

	waiting, err := svc.Waiting(ctx)
	require.NoError(t, err)
	assert.Len(t, waiting, 1)
}
