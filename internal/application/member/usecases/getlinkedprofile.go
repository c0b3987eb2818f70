package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/domain/usermapping"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// GetLinkedProfileUseCase resolves the game profile a Discord account was
// matched to by the last sync.
type GetLinkedProfileUseCase struct {
	mappingRepo usermapping.Repository
	logger      logger.Interface
}

func NewGetLinkedProfileUseCase(mappingRepo usermapping.Repository, logger logger.Interface) *GetLinkedProfileUseCase {
	return &GetLinkedProfileUseCase{mappingRepo: mappingRepo, logger: logger}
}

// Execute returns 0 when the account is not linked.
func (uc *GetLinkedProfileUseCase) Execute(ctx context.Context, discordID string) (int64, error) {
	m, err := uc.mappingRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		uc.logger.Errorw("failed to get user mapping", "discord_id", discordID, "error", err)
		return 0, err
	}
	if m == nil {
		return 0, nil
	}
	return m.ProfileID, nil
}
