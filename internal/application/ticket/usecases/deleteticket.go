package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type DeleteTicketCommand struct {
	ChannelID string
}

type DeleteTicketResult struct {
	Outcome
	// RecordDeleted is false when no ticket row existed.
	RecordDeleted bool
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.Repository
	platform   Platform
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.Repository,
	platform Platform,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		platform:   platform,
		logger:     logger,
	}
}

// Execute removes the record, then the channel. Repeating it is harmless.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	uc.logger.Infow("executing delete ticket use case", "channel_id", cmd.ChannelID)

	deleted, err := uc.ticketRepo.DeleteByChannelID(ctx, cmd.ChannelID)
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "channel_id", cmd.ChannelID, "error", err)
		return nil, err
	}

	if err := uc.platform.DeleteChannel(ctx, cmd.ChannelID); err != nil {
		uc.logger.Warnw("failed to delete ticket channel", "channel_id", cmd.ChannelID, "error", err)
	}

	uc.logger.Infow("ticket deleted", "channel_id", cmd.ChannelID, "record_deleted", deleted)

	return &DeleteTicketResult{Outcome: succeeded(), RecordDeleted: deleted}, nil
}
