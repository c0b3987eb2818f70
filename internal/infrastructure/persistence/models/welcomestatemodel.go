package models

import "time"

type WelcomeStateModel struct {
	MessageID string    `gorm:"primaryKey;size:32"`
	UserID    string    `gorm:"size:32;not null"`
	GuildID   string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WelcomeStateModel) TableName() string {
	return "welcome_states"
}
