package usecases

import (
	"context"
	"strings"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/application/ticket/dto"
	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

const DefaultCloseReason = "No reason provided."

type CloseTicketCommand struct {
	ChannelID string
	ClosedBy  string
	Reason    string
}

type CloseTicketResult struct {
	TicketResult
	CloseReason string
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

type CloseTicketUseCase struct {
	ticketRepo ticket.Repository
	platform   Platform
	notifier   notice.Notifier
	logger     logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.Repository,
	platform Platform,
	notifier notice.Notifier,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo: ticketRepo,
		platform:   platform,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	uc.logger.Infow("executing close ticket use case", "channel_id", cmd.ChannelID, "closed_by", cmd.ClosedBy)

	reason := strings.TrimSpace(cmd.Reason)
	if reason == "" {
		reason = DefaultCloseReason
	}

	t, err := uc.ticketRepo.GetByChannelID(ctx, cmd.ChannelID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "channel_id", cmd.ChannelID, "error", err)
		return nil, err
	}
	if t == nil {
		return &CloseTicketResult{TicketResult: TicketResult{Outcome: failed(ReasonNotFound)}, CloseReason: reason}, nil
	}

	if err := t.Close(); err != nil {
		if r, ok := expectedReason(err); ok {
			return &CloseTicketResult{
				TicketResult: TicketResult{Outcome: failed(r), Ticket: dto.ToTicketDTO(t)},
				CloseReason:  reason,
			}, nil
		}
		return nil, err
	}

	updated, err := uc.ticketRepo.SaveClose(ctx, t)
	if err != nil {
		uc.logger.Errorw("failed to save close", "channel_id", cmd.ChannelID, "error", err)
		return nil, err
	}
	if !updated {
		return &CloseTicketResult{TicketResult: TicketResult{Outcome: failed(ReasonAlreadyClosed)}, CloseReason: reason}, nil
	}

	if _, err := uc.notifier.Notify(ctx, t.ChannelID(), notice.Notice{
		Kind:         notice.KindTicketClosed,
		GuildID:      t.GuildID(),
		UserID:       t.CreatorID(),
		ActorID:      cmd.ClosedBy,
		TicketNumber: t.Number(),
		Reason:       reason,
	}); err != nil {
		uc.logger.Warnw("failed to post close notice", "channel_id", t.ChannelID(), "error", err)
	}

	if err := uc.platform.RevokeSendPermission(ctx, t.ChannelID(), t.CreatorID()); err != nil {
		uc.logger.Warnw("failed to revoke requester send permission",
			"channel_id", t.ChannelID(), "user_id", t.CreatorID(), "error", err)
	}

	uc.logger.Infow("ticket closed successfully", "channel_id", cmd.ChannelID, "number", t.Number())

	return &CloseTicketResult{
		TicketResult: TicketResult{Outcome: succeeded(), Ticket: dto.ToTicketDTO(t)},
		CloseReason:  reason,
	}, nil
}
