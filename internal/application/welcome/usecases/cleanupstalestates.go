package usecases

import (
	"context"
	"time"

	"github.com/corporatewarfare/cwbot/internal/domain/welcome"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// CleanupStaleStatesUseCase deletes verification prompts nobody answered
// within the retention period. Runs at startup and then periodically.
type CleanupStaleStatesUseCase struct {
	stateRepo welcome.Repository
	retention time.Duration
	logger    logger.Interface
	now       func() time.Time
}

func NewCleanupStaleStatesUseCase(stateRepo welcome.Repository, retention time.Duration, logger logger.Interface) *CleanupStaleStatesUseCase {
	if retention <= 0 {
		retention = welcome.RetentionPeriod
	}
	return &CleanupStaleStatesUseCase{
		stateRepo: stateRepo,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *CleanupStaleStatesUseCase) Execute(ctx context.Context) (int64, error) {
	cutoff := uc.now().UTC().Add(-uc.retention)

	removed, err := uc.stateRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to clean up welcome states", "cutoff", cutoff, "error", err)
		return 0, err
	}
	if removed > 0 {
		uc.logger.Infow("cleaned up stale welcome states", "count", removed)
	}
	return removed, nil
}
