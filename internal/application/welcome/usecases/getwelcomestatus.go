package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/domain/welcome"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type WelcomeStatus struct {
	Settings
	WelcomeChannelFound bool
	PendingCount        int64
}

type GetWelcomeStatusUseCase struct {
	stateRepo welcome.Repository
	platform  MemberPlatform
	settings  Settings
	logger    logger.Interface
}

func NewGetWelcomeStatusUseCase(stateRepo welcome.Repository, platform MemberPlatform, settings Settings, logger logger.Interface) *GetWelcomeStatusUseCase {
	return &GetWelcomeStatusUseCase{stateRepo: stateRepo, platform: platform, settings: settings, logger: logger}
}

func (uc *GetWelcomeStatusUseCase) Execute(ctx context.Context, guildID string) (*WelcomeStatus, error) {
	pending, err := uc.stateRepo.Count(ctx, guildID)
	if err != nil {
		uc.logger.Errorw("failed to count welcome states", "guild_id", guildID, "error", err)
		return nil, err
	}

	status := &WelcomeStatus{Settings: uc.settings, PendingCount: pending}
	if uc.settings.ChannelID != "" {
		found, err := uc.platform.ChannelExists(ctx, uc.settings.ChannelID)
		if err != nil {
			uc.logger.Warnw("failed to look up welcome channel", "channel_id", uc.settings.ChannelID, "error", err)
		}
		status.WelcomeChannelFound = found
	}
	return status, nil
}
