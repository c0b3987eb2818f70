package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/domain/welcome"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type MemberJoinCommand struct {
	GuildID     string
	GuildName   string
	UserID      string
	Username    string
	MemberCount int
}

type MemberJoinResult struct {
	// Posted is false when no prompt could be posted; no state is kept then.
	Posted    bool
	MessageID string
}

type HandleMemberJoinExecutor interface {
	Execute(ctx context.Context, cmd MemberJoinCommand) (*MemberJoinResult, error)
}

type HandleMemberJoinUseCase struct {
	stateRepo welcome.Repository
	platform  MemberPlatform
	notifier  notice.Notifier
	settings  Settings
	logger    logger.Interface
}

func NewHandleMemberJoinUseCase(
	stateRepo welcome.Repository,
	platform MemberPlatform,
	notifier notice.Notifier,
	settings Settings,
	logger logger.Interface,
) *HandleMemberJoinUseCase {
	return &HandleMemberJoinUseCase{
		stateRepo: stateRepo,
		platform:  platform,
		notifier:  notifier,
		settings:  settings,
		logger:    logger,
	}
}

func (uc *HandleMemberJoinUseCase) Execute(ctx context.Context, cmd MemberJoinCommand) (*MemberJoinResult, error) {
	uc.logger.Infow("handling member join", "guild_id", cmd.GuildID, "user_id", cmd.UserID)

	if roleID := uc.settings.UnverifiedRoleID; roleID != "" {
		if err := uc.platform.AddRole(ctx, cmd.GuildID, cmd.UserID, roleID); err != nil {
			uc.logger.Warnw("failed to assign unverified role",
				"guild_id", cmd.GuildID, "user_id", cmd.UserID, "role_id", roleID, "error", err)
		}
	}

	if !uc.welcomeChannelAvailable(ctx) {
		uc.logger.Warnw("welcome channel not found", "guild_id", cmd.GuildID, "channel_id", uc.settings.ChannelID)
		return &MemberJoinResult{}, nil
	}

	messageID, err := uc.notifier.Notify(ctx, uc.settings.ChannelID, uc.welcomeNotice(cmd))
	if err != nil {
		uc.logger.Errorw("failed to post welcome message", "guild_id", cmd.GuildID, "user_id", cmd.UserID, "error", err)
		return &MemberJoinResult{}, nil
	}

	if err := uc.platform.AddReaction(ctx, uc.settings.ChannelID, messageID, uc.settings.VerifyEmoji); err != nil {
		uc.logger.Warnw("failed to add verification reaction", "message_id", messageID, "error", err)
	}

	state, err := welcome.NewState(messageID, cmd.UserID, cmd.GuildID)
	if err != nil {
		return nil, err
	}
	if err := uc.stateRepo.Create(ctx, state); err != nil {
		uc.logger.Errorw("failed to persist welcome state", "message_id", messageID, "error", err)
		return nil, err
	}

	uc.logger.Infow("welcome prompt posted", "guild_id", cmd.GuildID, "user_id", cmd.UserID, "message_id", messageID)

	return &MemberJoinResult{Posted: true, MessageID: messageID}, nil
}

// Preview posts the welcome notice for cmd into channelID without assigning
// roles or tracking a verification.
func (uc *HandleMemberJoinUseCase) Preview(ctx context.Context, channelID string, cmd MemberJoinCommand) error {
	_, err := uc.notifier.Notify(ctx, channelID, uc.welcomeNotice(cmd))
	return err
}

func (uc *HandleMemberJoinUseCase) welcomeChannelAvailable(ctx context.Context) bool {
	if uc.settings.ChannelID == "" {
		return false
	}
	ok, err := uc.platform.ChannelExists(ctx, uc.settings.ChannelID)
	if err != nil {
		uc.logger.Warnw("failed to look up welcome channel", "channel_id", uc.settings.ChannelID, "error", err)
		return false
	}
	return ok
}

func (uc *HandleMemberJoinUseCase) welcomeNotice(cmd MemberJoinCommand) notice.Notice {
	return notice.Notice{
		Kind:           notice.KindWelcome,
		GuildID:        cmd.GuildID,
		GuildName:      cmd.GuildName,
		UserID:         cmd.UserID,
		Username:       cmd.Username,
		MemberCount:    cmd.MemberCount,
		RulesChannelID: uc.settings.RulesChannelID,
		VerifyEmoji:    uc.settings.VerifyEmoji,
	}
}
