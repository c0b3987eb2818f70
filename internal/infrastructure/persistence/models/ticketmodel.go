package models

import "time"

// TicketModel maps the tickets table. ID is an internal surrogate key; users
// only ever see Number, which is unique per guild.
type TicketModel struct {
	ID          uint       `gorm:"primaryKey"`
	GuildID     string     `gorm:"size:32;not null;uniqueIndex:uk_tickets_guild_number,priority:1"`
	Number      int        `gorm:"not null;uniqueIndex:uk_tickets_guild_number,priority:2"`
	ChannelID   string     `gorm:"size:32;not null;uniqueIndex:uk_tickets_channel"`
	CreatorID   string     `gorm:"size:32;not null;index"`
	Category    string     `gorm:"size:64;not null"`
	Subject     string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text;not null"`
	ClaimedBy   *string    `gorm:"size:32"`
	Status      string     `gorm:"size:16;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
	ClosedAt    *time.Time
}

func (TicketModel) TableName() string {
	return "tickets"
}
