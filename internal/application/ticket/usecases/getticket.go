package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/application/ticket/dto"
	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	vo "github.com/corporatewarfare/cwbot/internal/domain/ticket/valueobjects"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type GetTicketQuery struct {
	ChannelID string
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{ticketRepo: ticketRepo, logger: logger}
}

// Execute returns nil when the channel is not a ticket.
func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := uc.ticketRepo.GetByChannelID(ctx, query.ChannelID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "channel_id", query.ChannelID, "error", err)
		return nil, err
	}
	return dto.ToTicketDTO(t), nil
}

// IsTicket reports whether the channel belongs to a persisted ticket.
func (uc *GetTicketUseCase) IsTicket(ctx context.Context, channelID string) (bool, error) {
	t, err := uc.Execute(ctx, GetTicketQuery{ChannelID: channelID})
	return t != nil, err
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, guildID string) (*dto.TicketStatsDTO, error) {
	counts, err := uc.ticketRepo.CountByStatus(ctx, guildID)
	if err != nil {
		uc.logger.Errorw("failed to count tickets", "guild_id", guildID, "error", err)
		return nil, err
	}

	stats := &dto.TicketStatsDTO{
		GuildID: guildID,
		Open:    counts[vo.StatusOpen],
		Claimed: counts[vo.StatusClaimed],
		Closed:  counts[vo.StatusClosed],
	}
	stats.Total = stats.Open + stats.Claimed + stats.Closed
	return stats, nil
}
