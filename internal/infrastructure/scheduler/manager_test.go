package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Execute(context.Context) (int64, error) {
	j.runs.Add(1)
	return 3, j.err
}

type countingSweeper struct {
	runs atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.runs.Add(1)
	return 1
}

func TestSchedulerManager_WelcomeCleanupRunsAtStart(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, m.RegisterWelcomeCleanup(job, time.Hour))
	m.Start()
	defer func() { require.NoError(t, m.Stop()) }()

	assert.Eventually(t, func() bool { return job.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerManager_CooldownSweepRepeats(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	sweeper := &countingSweeper{}
	require.NoError(t, m.RegisterCooldownSweep(sweeper, 20*time.Millisecond))
	require.NoError(t, m.RegisterWelcomeCleanup(&countingJob{err: errors.New("locked")}, time.Hour))
	assert.Len(t, m.Jobs(), 2)

	m.Start()
	assert.True(t, m.IsStarted())
	assert.Eventually(t, func() bool { return sweeper.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	assert.NoError(t, m.Stop())
}
