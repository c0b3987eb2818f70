package usecases

import (
	"context"
	"time"
)

// MemberPlatform is the part of the chat platform the welcome flow drives.
type MemberPlatform interface {
	AddRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error
	ChannelExists(ctx context.Context, channelID string) (bool, error)
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
}

// Settings is the welcome configuration. Empty ids disable the step that
// uses them.
type Settings struct {
	ChannelID        string
	RulesChannelID   string
	UnverifiedRoleID string
	MemberRoleID     string
	VerifyEmoji      string
	Retention        time.Duration
}
