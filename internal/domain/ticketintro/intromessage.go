// Package ticketintro models the persistent panel messages members react to
// in order to open a ticket.
package ticketintro

import (
	"context"
	"time"
)

type IntroMessage struct {
	MessageID string
	GuildID   string
	ChannelID string
	CreatedAt time.Time
}

type Repository interface {
	// Add is idempotent. It reports whether a new row was inserted.
	Add(ctx context.Context, m *IntroMessage) (bool, error)
	Exists(ctx context.Context, messageID string) (bool, error)
	Remove(ctx context.Context, messageID string) (bool, error)
	// ListMessageIDs lists every intro message, or only the guild's when
	// guildID is non-empty.
	ListMessageIDs(ctx context.Context, guildID string) ([]string, error)
	RemoveByGuild(ctx context.Context, guildID string) (int64, error)
	Count(ctx context.Context, guildID string) (int64, error)
}
