// Package usermapping links Discord accounts to Corporate Warfare profiles.
package usermapping

import (
	"context"
	"time"
)

type Mapping struct {
	DiscordID       string
	UserID          int64
	ProfileID       int64
	Username        string
	PlayerName      string
	ProfileSlug     string
	ProfileImageURL string
	DiscordUsername string
	DiscordAvatar   string
	// Raw is the record the game API returned, kept verbatim.
	Raw       []byte
	UpdatedAt time.Time
}

// Repository persists mappings. Lookups return (nil, nil) when nothing
// matches.
type Repository interface {
	// Upsert inserts m or overwrites every mutable field of the existing row
	// and refreshes its updated_at.
	Upsert(ctx context.Context, m *Mapping) error
	GetByDiscordID(ctx context.Context, discordID string) (*Mapping, error)
	GetByProfileID(ctx context.Context, profileID int64) (*Mapping, error)
	Count(ctx context.Context) (int64, error)
}
