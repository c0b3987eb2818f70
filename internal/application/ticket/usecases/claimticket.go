package usecases

import (
	"context"
	"errors"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/application/ticket/dto"
	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type ClaimTicketCommand struct {
	ChannelID string
	StaffID   string
}

type ClaimTicketExecutor interface {
	Execute(ctx context.Context, cmd ClaimTicketCommand) (*TicketResult, error)
}

type ClaimTicketUseCase struct {
	ticketRepo ticket.Repository
	notifier   notice.Notifier
	logger     logger.Interface
}

func NewClaimTicketUseCase(
	ticketRepo ticket.Repository,
	notifier notice.Notifier,
	logger logger.Interface,
) *ClaimTicketUseCase {
	return &ClaimTicketUseCase{
		ticketRepo: ticketRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *ClaimTicketUseCase) Execute(ctx context.Context, cmd ClaimTicketCommand) (*TicketResult, error) {
	uc.logger.Infow("executing claim ticket use case", "channel_id", cmd.ChannelID, "staff_id", cmd.StaffID)

	t, err := uc.ticketRepo.GetByChannelID(ctx, cmd.ChannelID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "channel_id", cmd.ChannelID, "error", err)
		return nil, err
	}
	if t == nil {
		return &TicketResult{Outcome: failed(ReasonNotFound)}, nil
	}

	if err := t.Claim(cmd.StaffID); err != nil {
		if reason, ok := expectedReason(err); ok {
			return &TicketResult{Outcome: failed(reason), Ticket: dto.ToTicketDTO(t)}, nil
		}
		return nil, err
	}

	updated, err := uc.ticketRepo.SaveClaim(ctx, t)
	if err != nil {
		uc.logger.Errorw("failed to save claim", "channel_id", cmd.ChannelID, "error", err)
		return nil, err
	}
	if !updated {
		// another staff member claimed (or closed) it since we read the row
		return uc.lostRace(ctx, cmd.ChannelID)
	}

	if _, err := uc.notifier.Notify(ctx, t.ChannelID(), notice.Notice{
		Kind:         notice.KindTicketClaimed,
		GuildID:      t.GuildID(),
		UserID:       t.CreatorID(),
		ActorID:      cmd.StaffID,
		TicketNumber: t.Number(),
	}); err != nil {
		uc.logger.Warnw("failed to post claim notice", "channel_id", t.ChannelID(), "error", err)
	}

	uc.logger.Infow("ticket claimed successfully", "channel_id", cmd.ChannelID, "number", t.Number())

	return &TicketResult{Outcome: succeeded(), Ticket: dto.ToTicketDTO(t)}, nil
}

func (uc *ClaimTicketUseCase) lostRace(ctx context.Context, channelID string) (*TicketResult, error) {
	current, err := uc.ticketRepo.GetByChannelID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	switch {
	case current == nil:
		return &TicketResult{Outcome: failed(ReasonNotFound)}, nil
	case current.IsClaimed():
		return &TicketResult{Outcome: failed(ReasonAlreadyClaimed), Ticket: dto.ToTicketDTO(current)}, nil
	default:
		return &TicketResult{Outcome: failed(ReasonAlreadyClosed), Ticket: dto.ToTicketDTO(current)}, nil
	}
}

func expectedReason(err error) (FailureReason, bool) {
	switch {
	case errors.Is(err, ticket.ErrAlreadyClaimed):
		return ReasonAlreadyClaimed, true
	case errors.Is(err, ticket.ErrAlreadyClosed):
		return ReasonAlreadyClosed, true
	}
	return "", false
}
