package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserMappingModel struct {
	DiscordID       string `gorm:"primaryKey;size:32"`
	UserID          int64  `gorm:"not null"`
	ProfileID       int64  `gorm:"not null;index"`
	Username        string `gorm:"size:128;not null"`
	PlayerName      string `gorm:"size:128;not null"`
	ProfileSlug     string `gorm:"size:128;not null"`
	ProfileImageURL string `gorm:"size:512;not null"`
	DiscordUsername string `gorm:"size:128;not null"`
	DiscordAvatar   string `gorm:"size:512;not null"`
	Raw             datatypes.JSON
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (UserMappingModel) TableName() string {
	return "user_mappings"
}
