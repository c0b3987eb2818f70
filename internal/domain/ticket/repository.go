package ticket

import (
	"context"
	"time"

	vo "github.com/corporatewarfare/cwbot/internal/domain/ticket/valueobjects"
)

// Repository persists tickets. Lookups return (nil, nil) when nothing matches.
type Repository interface {
	// Create inserts t and assigns its ID. It returns ErrNumberTaken when the
	// guild already has a ticket with t's number.
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	GetByChannelID(ctx context.Context, channelID string) (*Ticket, error)
	ListByGuild(ctx context.Context, guildID string, filter ListFilter) ([]*Ticket, error)
	ListByCreator(ctx context.Context, guildID, creatorID string) ([]*Ticket, error)
	// MaxNumber returns the highest ticket number in the guild, 0 if none.
	MaxNumber(ctx context.Context, guildID string) (int, error)
	// SaveClaim persists a claim only if the stored row is still unclaimed
	// and open. It reports whether the row was updated.
	SaveClaim(ctx context.Context, t *Ticket) (bool, error)
	// SaveClose persists a close only if the stored row is not closed yet.
	SaveClose(ctx context.Context, t *Ticket) (bool, error)
	// DeleteByChannelID reports whether a row was removed.
	DeleteByChannelID(ctx context.Context, channelID string) (bool, error)
	Count(ctx context.Context, guildID string, status *vo.TicketStatus) (int64, error)
	CountByStatus(ctx context.Context, guildID string) (map[vo.TicketStatus]int64, error)
}

type ListFilter struct {
	Status *vo.TicketStatus
	Since  *time.Time
	Limit  int
}
