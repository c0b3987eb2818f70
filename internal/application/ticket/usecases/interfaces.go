package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/application/ticket/transcript"
)

// ChannelSpec describes a private ticket channel. The requester and the
// staff role (when set) can see it; @everyone cannot.
type ChannelSpec struct {
	GuildID     string
	Name        string
	Topic       string
	ParentID    string
	RequesterID string
	StaffRoleID string
}

type Channel struct {
	ID   string
	Name string
}

// Platform is the chat platform as the ticket workflow sees it.
type Platform interface {
	CreateTicketChannel(ctx context.Context, spec ChannelSpec) (*Channel, error)
	RenameChannel(ctx context.Context, channelID, name string) error
	GetChannel(ctx context.Context, channelID string) (*Channel, error)
	PinMessage(ctx context.Context, channelID, messageID string) error
	// RevokeSendPermission stops userID from posting in the channel while
	// keeping read access.
	RevokeSendPermission(ctx context.Context, channelID, userID string) error
	// FetchMessages returns up to limit messages, newest first.
	FetchMessages(ctx context.Context, channelID string, limit int) ([]transcript.Message, error)
	DeleteChannel(ctx context.Context, channelID string) error
}
