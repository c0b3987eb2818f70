package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	memberUsecases "github.com/corporatewarfare/cwbot/internal/application/member/usecases"
	"github.com/corporatewarfare/cwbot/internal/application/ticket/transcript"
	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
)

const (
	requesterAllow = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory |
		discordgo.PermissionAttachFiles
	staffAllow = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory |
		discordgo.PermissionManageMessages

	// memberPageSize is the largest page the members endpoint returns.
	memberPageSize = 1000
)

// Platform performs the channel, role and message operations the use cases
// ask for.
type Platform struct {
	rest REST
}

var (
	_ ticketUsecases.Platform        = (*Platform)(nil)
	_ ticketUsecases.Reactor         = (*Platform)(nil)
	_ welcomeUsecases.MemberPlatform = (*Platform)(nil)
)

func NewPlatform(rest REST) *Platform {
	return &Platform{rest: rest}
}

func withCtx(ctx context.Context) discordgo.RequestOption {
	return discordgo.WithContext(ctx)
}

func (p *Platform) CreateTicketChannel(ctx context.Context, spec ticketUsecases.ChannelSpec) (*ticketUsecases.Channel, error) {
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: spec.GuildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: spec.RequesterID, Type: discordgo.PermissionOverwriteTypeMember, Allow: requesterAllow},
	}
	if spec.StaffRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID: spec.StaffRoleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: staffAllow,
		})
	}

	ch, err := p.rest.GuildChannelCreateComplex(spec.GuildID, discordgo.GuildChannelCreateData{
		Name:                 spec.Name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                spec.Topic,
		ParentID:             spec.ParentID,
		PermissionOverwrites: overwrites,
	}, withCtx(ctx))
	if err != nil {
		return nil, err
	}
	return &ticketUsecases.Channel{ID: ch.ID, Name: ch.Name}, nil
}

func (p *Platform) RenameChannel(ctx context.Context, channelID, name string) error {
	_, err := p.rest.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, withCtx(ctx))
	return err
}

func (p *Platform) GetChannel(ctx context.Context, channelID string) (*ticketUsecases.Channel, error) {
	ch, err := p.rest.Channel(channelID, withCtx(ctx))
	if err != nil {
		return nil, err
	}
	return &ticketUsecases.Channel{ID: ch.ID, Name: ch.Name}, nil
}

func (p *Platform) PinMessage(ctx context.Context, channelID, messageID string) error {
	return p.rest.ChannelMessagePin(channelID, messageID, withCtx(ctx))
}

// RevokeSendPermission keeps the member's read access and denies posting.
func (p *Platform) RevokeSendPermission(ctx context.Context, channelID, userID string) error {
	return p.rest.ChannelPermissionSet(channelID, userID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel|discordgo.PermissionReadMessageHistory,
		discordgo.PermissionSendMessages,
		withCtx(ctx))
}

func (p *Platform) FetchMessages(ctx context.Context, channelID string, limit int) ([]transcript.Message, error) {
	msgs, err := p.rest.ChannelMessages(channelID, limit, "", "", "", withCtx(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]transcript.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toTranscriptMessage(m))
	}
	return out, nil
}

func toTranscriptMessage(m *discordgo.Message) transcript.Message {
	attachments := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, a.URL)
	}
	return transcript.Message{
		ID:          m.ID,
		AuthorTag:   formatTag(m.Author),
		Content:     m.Content,
		Attachments: attachments,
		EmbedCount:  len(m.Embeds),
		CreatedAt:   m.Timestamp,
	}
}

// DeleteChannel treats a channel that is already gone as deleted.
func (p *Platform) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := p.rest.ChannelDelete(channelID, withCtx(ctx)); err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

func (p *Platform) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	return p.rest.GuildMemberRoleAdd(guildID, userID, roleID, withCtx(ctx))
}

func (p *Platform) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	return p.rest.GuildMemberRoleRemove(guildID, userID, roleID, withCtx(ctx))
}

func (p *Platform) ChannelExists(ctx context.Context, channelID string) (bool, error) {
	if _, err := p.rest.Channel(channelID, withCtx(ctx)); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *Platform) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return p.rest.MessageReactionAdd(channelID, messageID, emoji, withCtx(ctx))
}

func (p *Platform) RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error {
	return p.rest.MessageReactionRemove(channelID, messageID, emoji, userID, withCtx(ctx))
}

// Send posts a message and returns its id.
func (p *Platform) Send(ctx context.Context, channelID string, msg *discordgo.MessageSend) (string, error) {
	m, err := p.rest.ChannelMessageSendComplex(channelID, msg, withCtx(ctx))
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

// DeleteMessage treats a message that is already gone as deleted.
func (p *Platform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := p.rest.ChannelMessageDelete(channelID, messageID, withCtx(ctx)); err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// ListMembers pages through every member of the guild.
func (p *Platform) ListMembers(ctx context.Context, guildID string) ([]memberUsecases.GuildMember, error) {
	var (
		out   []memberUsecases.GuildMember
		after string
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := p.rest.GuildMembers(guildID, after, memberPageSize, withCtx(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list guild members after %q: %w", after, err)
		}
		for _, m := range page {
			if m.User == nil {
				continue
			}
			out = append(out, memberUsecases.GuildMember{
				ID:            m.User.ID,
				Username:      m.User.Username,
				Discriminator: m.User.Discriminator,
				Avatar:        m.User.Avatar,
				Bot:           m.User.Bot,
			})
			after = m.User.ID
		}
		if len(page) < memberPageSize {
			return out, nil
		}
	}
}

// formatTag renders a user the way transcripts show authors.
func formatTag(u *discordgo.User) string {
	if u == nil {
		return "Unknown"
	}
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return strings.Join([]string{u.Username, u.Discriminator}, "#")
}
