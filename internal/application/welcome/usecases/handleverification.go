package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/domain/welcome"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type VerifyCommand struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
}

type RejectReason string

const (
	RejectNoPendingState RejectReason = "no_pending_state"
	RejectUserMismatch   RejectReason = "user_mismatch"
)

type VerificationResult struct {
	Verified bool
	Reason   RejectReason
}

type HandleVerificationExecutor interface {
	Execute(ctx context.Context, cmd VerifyCommand) (*VerificationResult, error)
}

type HandleVerificationUseCase struct {
	stateRepo welcome.Repository
	platform  MemberPlatform
	notifier  notice.Notifier
	settings  Settings
	logger    logger.Interface
}

func NewHandleVerificationUseCase(
	stateRepo welcome.Repository,
	platform MemberPlatform,
	notifier notice.Notifier,
	settings Settings,
	logger logger.Interface,
) *HandleVerificationUseCase {
	return &HandleVerificationUseCase{
		stateRepo: stateRepo,
		platform:  platform,
		notifier:  notifier,
		settings:  settings,
		logger:    logger,
	}
}

// Execute verifies the member the prompt was posted for. Role changes and
// the confirmation are best-effort; once the acting member matches, the
// pending state is removed regardless of their outcome.
func (uc *HandleVerificationUseCase) Execute(ctx context.Context, cmd VerifyCommand) (*VerificationResult, error) {
	state, err := uc.stateRepo.GetByMessageID(ctx, cmd.MessageID)
	if err != nil {
		uc.logger.Errorw("failed to get welcome state", "message_id", cmd.MessageID, "error", err)
		return nil, err
	}
	if state == nil {
		return &VerificationResult{Reason: RejectNoPendingState}, nil
	}
	if !state.CanBeVerifiedBy(cmd.UserID) {
		uc.logger.Infow("verification attempt by another member",
			"message_id", cmd.MessageID, "user_id", cmd.UserID, "expected_user_id", state.UserID())
		return &VerificationResult{Reason: RejectUserMismatch}, nil
	}

	guildID := state.GuildID()

	if roleID := uc.settings.UnverifiedRoleID; roleID != "" {
		if err := uc.platform.RemoveRole(ctx, guildID, cmd.UserID, roleID); err != nil {
			uc.logger.Warnw("failed to remove unverified role", "user_id", cmd.UserID, "role_id", roleID, "error", err)
		}
	}
	if roleID := uc.settings.MemberRoleID; roleID != "" {
		if err := uc.platform.AddRole(ctx, guildID, cmd.UserID, roleID); err != nil {
			uc.logger.Warnw("failed to add member role", "user_id", cmd.UserID, "role_id", roleID, "error", err)
		}
	}

	if cmd.ChannelID != "" {
		if _, err := uc.notifier.Notify(ctx, cmd.ChannelID, notice.Notice{
			Kind:           notice.KindVerified,
			GuildID:        guildID,
			UserID:         cmd.UserID,
			RulesChannelID: uc.settings.RulesChannelID,
		}); err != nil {
			uc.logger.Warnw("failed to post verification confirmation", "channel_id", cmd.ChannelID, "error", err)
		}
	}

	if _, err := uc.stateRepo.DeleteByMessageID(ctx, cmd.MessageID); err != nil {
		uc.logger.Errorw("failed to delete welcome state", "message_id", cmd.MessageID, "error", err)
		return nil, err
	}

	uc.logger.Infow("member verified", "guild_id", guildID, "user_id", cmd.UserID)

	return &VerificationResult{Verified: true}, nil
}
