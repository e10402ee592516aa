// Package maintenance runs housekeeping jobs for the fetch log.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/repositories/fetchlog"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/formatter"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

const cleanupTimeout = 5 * time.Minute

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Config   *config.Config
	Logger   logger.Logger
	FetchLog fetchlog.Repository
	Clock    clockwork.Clock
}

type Cleaner struct {
	repo      fetchlog.Repository
	retention time.Duration
	clock     clockwork.Clock
	logger    logger.Logger
}

func NewCleaner(repo fetchlog.Repository, retention time.Duration, clock clockwork.Clock, log logger.Logger) *Cleaner {
	return &Cleaner{
		repo:      repo,
		retention: retention,
		clock:     clock,
		logger:    log,
	}
}

// Run deletes fetch events older than the retention window.
func (c *Cleaner) Run(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()

	cutoff := c.clock.Now().Add(-c.retention)
	rows, err := c.repo.CleanupOldRecords(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup fetch events before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return rows, nil
}

// NewScheduler builds a scheduler running the cleaner every day at 03:00 in loc.
func NewScheduler(c *Cleaner, loc *time.Location, clock clockwork.Clock) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc), gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			c.logger.Info("Starting scheduled fetch log cleanup")
			rows, err := c.Run(context.Background())
			if err != nil {
				c.logger.Error("Failed to clean up old fetch events", "error", err)
				return
			}
			c.logger.Info("Fetch log cleanup completed", "rows_deleted", rows)
		}),
		gocron.WithName("fetchlog-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule fetch log cleanup: %w", err)
	}
	return scheduler, nil
}

// Register schedules the cleanup when the fetch log is enabled and ties the
// scheduler to the app lifecycle.
func Register(opts Opts) error {
	if !opts.Config.FetchLogEnabled() {
		return nil
	}

	log := opts.Logger.WithComponent("Maintenance")
	cleaner := NewCleaner(opts.FetchLog, opts.Config.FetchLog.Retention, opts.Clock, log)
	loc, err := formatter.LoadLocation(opts.Config.App.Timezone)
	if err != nil {
		log.Warn("Failed to load timezone, using UTC-4", "timezone", opts.Config.App.Timezone, "error", err)
	}
	scheduler, err := NewScheduler(cleaner, loc, opts.Clock)
	if err != nil {
		return err
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			log.Info("Fetch log cleanup scheduled", "at", "03:00", "retention", opts.Config.FetchLog.Retention.String())
			return nil
		},
		OnStop: func(context.Context) error {
			log.Info("Stopping fetch log cleanup scheduler")
			return scheduler.Shutdown()
		},
	})
	return nil
}
