package discordbot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	memberUsecases "github.com/corporatewarfare/cwbot/internal/application/member/usecases"
	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/gameapi"
)

// TicketPanelService posts ticket panels and recognises them.
type TicketPanelService interface {
	Execute(ctx context.Context, cmd ticketUsecases.PostTicketPanelCommand) (*ticketUsecases.PostTicketPanelResult, error)
	IsPanel(ctx context.Context, messageID string) (bool, error)
}

// WelcomeService greets new members and previews the greeting.
type WelcomeService interface {
	Execute(ctx context.Context, cmd welcomeUsecases.MemberJoinCommand) (*welcomeUsecases.MemberJoinResult, error)
	Preview(ctx context.Context, channelID string, cmd welcomeUsecases.MemberJoinCommand) error
}

type WelcomeStatusQuerier interface {
	Execute(ctx context.Context, guildID string) (*welcomeUsecases.WelcomeStatus, error)
}

type LinkedProfileResolver interface {
	Execute(ctx context.Context, discordID string) (int64, error)
}

// GameAPI is the read side of the game API client.
type GameAPI interface {
	FetchProfile(ctx context.Context, profileID int64) (*gameapi.Profile, error)
	FetchCorporation(ctx context.Context, corporationID int64) (*gameapi.Corporation, error)
	FetchLeaderboard(ctx context.Context, page int, sort gameapi.LeaderboardSort, pageSize int) (*gameapi.Leaderboard, error)
	FetchGameTime(ctx context.Context) (*gameapi.GameTime, error)
	FetchState(ctx context.Context, code string) (*gameapi.State, error)
	FetchCommodities(ctx context.Context) ([]gameapi.Commodity, error)
}

// Messenger is the part of the platform the handlers drive directly.
type Messenger interface {
	Send(ctx context.Context, channelID string, msg *discordgo.MessageSend) (string, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error
	ListMembers(ctx context.Context, guildID string) ([]memberUsecases.GuildMember, error)
}
