package dto

import (
	"time"

	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
)

type TicketDTO struct {
	Number      int        `json:"number"`
	GuildID     string     `json:"guild_id"`
	ChannelID   string     `json:"channel_id"`
	CreatorID   string     `json:"creator_id"`
	Category    string     `json:"category"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	ClaimedBy   *string    `json:"claimed_by"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		Number:      t.Number(),
		GuildID:     t.GuildID(),
		ChannelID:   t.ChannelID(),
		CreatorID:   t.CreatorID(),
		Category:    t.Category(),
		Subject:     t.Subject(),
		Description: t.Description(),
		ClaimedBy:   t.ClaimedBy(),
		Status:      t.Status().String(),
		CreatedAt:   t.CreatedAt(),
		ClosedAt:    t.ClosedAt(),
	}
}

type TicketStatsDTO struct {
	GuildID string `json:"guild_id"`
	Total   int64  `json:"total"`
	Open    int64  `json:"open"`
	Claimed int64  `json:"claimed"`
	Closed  int64  `json:"closed"`
}
