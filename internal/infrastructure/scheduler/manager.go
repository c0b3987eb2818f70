// Package scheduler runs the bot's periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// DefaultCleanupInterval is how often stale welcome states are purged.
const DefaultCleanupInterval = time.Hour

// CleanupJob removes expired records and reports how many it removed.
type CleanupJob interface {
	Execute(ctx context.Context) (int64, error)
}

// Sweeper drops expired in-memory entries and reports how many it dropped.
type Sweeper interface {
	Sweep() int
}

// SchedulerManager owns the gocron scheduler and its jobs.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterCooldownSweep sweeps the cooldown tracker every interval.
func (m *SchedulerManager) RegisterCooldownSweep(sweeper Sweeper, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if removed := sweeper.Sweep(); removed > 0 {
				m.logger.Debugw("cooldown entries swept", "removed", removed)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("cooldown", "sweep"),
		gocron.WithName("cooldown-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered cooldown sweep", "interval", interval.String())
	return nil
}

// RegisterWelcomeCleanup purges stale welcome states right away and then
// every interval.
func (m *SchedulerManager) RegisterWelcomeCleanup(job CleanupJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			m.cleanupWelcomeStates(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("welcome", "cleanup"),
		gocron.WithName("welcome-cleanup"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered welcome cleanup", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) cleanupWelcomeStates(ctx context.Context, job CleanupJob) {
	startTime := time.Now()

	removed, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to clean up welcome states",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if removed > 0 {
		m.logger.Infow("stale welcome states removed",
			"count", removed,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no stale welcome states to remove")
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
