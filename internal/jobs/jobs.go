package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"tably/config"
	bookingService "tably/internal/domains/booking/service"
)

// Jobs owns the background schedules, currently just the expired booking
// request sweeper.
type Jobs struct {
	cron    *cron.Cron
	booking bookingService.Booking
	cfg     *config.Config
}

func New(booking bookingService.Booking, cfg *config.Config) *Jobs {
	return &Jobs{
		cron:    cron.New(),
		booking: booking,
		cfg:     cfg,
	}
}

// Start registers the schedules and launches the cron runner.
func (j *Jobs) Start() error {
	spec := fmt.Sprintf("@every %ds", j.cfg.Booking.SweepIntervalSeconds)

	if _, err := j.cron.AddFunc(spec, j.sweepExpiredRequests); err != nil {
		return fmt.Errorf("failed to schedule expired request sweeper: %w", err)
	}

	j.cron.Start()

	log.Info().Str("interval", spec).Msg("Expired booking request sweeper scheduled")

	return nil
}

// Stop halts the runner and waits for a running sweep to finish.
func (j *Jobs) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Jobs) sweepExpiredRequests() {
	if err := j.booking.SweepAll(context.Background()); err != nil {
		log.Error().Err(err).Msg("expired booking request sweep failed")
	}
}
