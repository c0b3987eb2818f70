package usecases

import (
	"context"
	"time"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/domain/ticketintro"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// PanelEmoji is the reaction members add to a ticket panel.
const PanelEmoji = "🎫"

// Reactor adds reactions to messages.
type Reactor interface {
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
}

type PostTicketPanelCommand struct {
	GuildID   string
	ChannelID string
}

type PostTicketPanelResult struct {
	MessageID string
}

// TicketPanelUseCase posts ticket panels and recognises reactions on them.
type TicketPanelUseCase struct {
	introRepo ticketintro.Repository
	notifier  notice.Notifier
	reactor   Reactor
	logger    logger.Interface
}

func NewTicketPanelUseCase(
	introRepo ticketintro.Repository,
	notifier notice.Notifier,
	reactor Reactor,
	logger logger.Interface,
) *TicketPanelUseCase {
	return &TicketPanelUseCase{
		introRepo: introRepo,
		notifier:  notifier,
		reactor:   reactor,
		logger:    logger,
	}
}

// Execute posts a panel into the channel and records it. The seed reaction
// is best-effort.
func (uc *TicketPanelUseCase) Execute(ctx context.Context, cmd PostTicketPanelCommand) (*PostTicketPanelResult, error) {
	uc.logger.Infow("posting ticket panel", "guild_id", cmd.GuildID, "channel_id", cmd.ChannelID)

	messageID, err := uc.notifier.Notify(ctx, cmd.ChannelID, notice.Notice{
		Kind:    notice.KindTicketPanel,
		GuildID: cmd.GuildID,
	})
	if err != nil {
		uc.logger.Errorw("failed to post ticket panel", "channel_id", cmd.ChannelID, "error", err)
		return nil, err
	}

	if err := uc.reactor.AddReaction(ctx, cmd.ChannelID, messageID, PanelEmoji); err != nil {
		uc.logger.Warnw("failed to seed ticket panel reaction", "message_id", messageID, "error", err)
	}

	if _, err := uc.introRepo.Add(ctx, &ticketintro.IntroMessage{
		MessageID: messageID,
		GuildID:   cmd.GuildID,
		ChannelID: cmd.ChannelID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		uc.logger.Errorw("failed to record ticket panel", "message_id", messageID, "error", err)
		return nil, err
	}

	return &PostTicketPanelResult{MessageID: messageID}, nil
}

// IsPanel reports whether messageID is a recorded ticket panel.
func (uc *TicketPanelUseCase) IsPanel(ctx context.Context, messageID string) (bool, error) {
	return uc.introRepo.Exists(ctx, messageID)
}
