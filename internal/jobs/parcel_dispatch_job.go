package jobs

import (
	"context"
	"errors"
	"log/slog"

	"couriertrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ParcelDispatchJob periodically assigns pending parcels to available agents.
// Runs every second so freshly booked parcels and agents coming online are
// picked up without operator involvement.
type ParcelDispatchJob struct {
	handler commands.DispatchParcelsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewParcelDispatchJob creates the dispatch job around the given handler.
func NewParcelDispatchJob(handler commands.DispatchParcelsCommandHandler, logger *slog.Logger) *ParcelDispatchJob {
	return &ParcelDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "parcel_dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *ParcelDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchParcelsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty pending pool or a fully busy fleet is the normal idle
			// state, not a fault.
			if !errors.Is(err, commands.ErrNoParcelFound) && !errors.Is(err, commands.ErrNoAvailableAgentsFound) {
				j.logger.ErrorContext(ctx, "Parcel dispatch job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Parcel dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *ParcelDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Parcel dispatch job stopped")
}
