package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Sweeper releases expired reservations
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// UserPurger removes identities whose day has rolled over
type UserPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic expiry sweep. The lazy sweep on read paths
// keeps views correct on its own; this job bounds how long an expired
// reservation can linger on an idle system.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// New creates a scheduler running the sweep and user purge at the given
// interval. Call Start to begin and Stop to shut down.
func New(interval time.Duration, sweeper Sweeper, purger UserPurger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Scheduler job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, err := sweeper.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("Scheduled expiry sweep failed")
			}
			if _, err := purger.PurgeExpired(ctx); err != nil {
				log.Error().Err(err).Msg("Scheduled user purge failed")
			}
		}),
		gocron.WithName("expiry-sweep"),
	)
	if err != nil {
		return nil, err
	}

	return &Scheduler{scheduler: sched}, nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.scheduler.Start()
	log.Info().Msg("Scheduler started")
}

// Stop shuts the scheduler down, waiting for running jobs
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
