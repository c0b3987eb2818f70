package mappers

import (
	"fmt"

	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	vo "github.com/corporatewarfare/cwbot/internal/domain/ticket/valueobjects"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(ms []*models.TicketModel) ([]*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		GuildID:     t.GuildID(),
		Number:      t.Number(),
		ChannelID:   t.ChannelID(),
		CreatorID:   t.CreatorID(),
		Category:    t.Category(),
		Subject:     t.Subject(),
		Description: t.Description(),
		ClaimedBy:   t.ClaimedBy(),
		Status:      t.Status().String(),
		CreatedAt:   t.CreatedAt().UTC(),
		UpdatedAt:   t.UpdatedAt().UTC(),
		ClosedAt:    t.ClosedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	t, err := ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.GuildID,
		model.ChannelID,
		model.CreatorID,
		model.Category,
		model.Subject,
		model.Description,
		model.ClaimedBy,
		status,
		model.CreatedAt,
		model.UpdatedAt,
		model.ClosedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) ToDomainList(ms []*models.TicketModel) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(ms))
	for _, model := range ms {
		t, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
