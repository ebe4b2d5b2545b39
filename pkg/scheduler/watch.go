package scheduler

import (
	"context"
	"time"

	"github.com/fadedpez/handtracker/internal/logging"
)

const defaultCleanupInterval = 24 * time.Hour

// Sweeper imports whatever is waiting in an inbox
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Cleaner drops quarantine entries past their retention
type Cleaner interface {
	CleanupOld(ctx context.Context, maxAge time.Duration) (int, error)
}

// WatchConfig configures the watch mode tasks
type WatchConfig struct {
	Interval        time.Duration // inbox sweep interval
	QuarantineAge   time.Duration // zero disables quarantine cleanup
	CleanupInterval time.Duration
}

// Watcher runs the import tasks of watch mode on a Scheduler
type Watcher struct {
	scheduler *Scheduler
	sweeper   Sweeper
	cleaner   Cleaner
	config    WatchConfig
	log       *logging.Logger
}

// NewWatcher creates a watcher; cleaner may be nil
func NewWatcher(scheduler *Scheduler, sweeper Sweeper, cleaner Cleaner, config WatchConfig) *Watcher {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaultCleanupInterval
	}
	return &Watcher{
		scheduler: scheduler,
		sweeper:   sweeper,
		cleaner:   cleaner,
		config:    config,
		log:       scheduler.log,
	}
}

// Start registers the tasks and starts the scheduler
func (w *Watcher) Start(ctx context.Context) {
	w.scheduler.AddTask("inbox_sweep", w.config.Interval, w.sweep)
	if w.cleaner != nil && w.config.QuarantineAge > 0 {
		w.scheduler.AddTask("quarantine_cleanup", w.config.CleanupInterval, w.cleanup)
	}
	w.scheduler.Start(ctx)
}

// Stop stops the scheduler
func (w *Watcher) Stop() {
	w.scheduler.Stop()
}

func (w *Watcher) sweep(ctx context.Context) error {
	files, err := w.sweeper.Sweep(ctx)
	if err != nil {
		return err
	}
	if files > 0 {
		w.log.Info("Processed %d inbox files", files)
	}
	return nil
}

func (w *Watcher) cleanup(ctx context.Context) error {
	removed, err := w.cleaner.CleanupOld(ctx, w.config.QuarantineAge)
	if err != nil {
		return err
	}
	if removed > 0 {
		w.log.Info("Removed %d expired quarantine entries", removed)
	}
	return nil
}
