package models

import "time"

type TicketIntroMessageModel struct {
	MessageID string    `gorm:"primaryKey;size:32"`
	GuildID   string    `gorm:"size:32;not null;index"`
	ChannelID string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (TicketIntroMessageModel) TableName() string {
	return "ticket_intro_messages"
}
