package discordbot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
)

// HandleMemberJoin greets human members.
func (b *Bot) HandleMemberJoin(ctx context.Context, m discord.MemberJoin) error {
	if m.Bot {
		return nil
	}
	res, err := b.Welcome.Execute(ctx, welcomeUsecases.MemberJoinCommand{
		GuildID:     m.GuildID,
		GuildName:   m.GuildName,
		UserID:      m.UserID,
		Username:    m.Username,
		MemberCount: m.MemberCount,
	})
	if err != nil {
		return err
	}
	if !res.Posted {
		b.logger.Debugw("no welcome prompt posted", "guild_id", m.GuildID, "user_id", m.UserID)
	}
	return nil
}

// HandleReaction verifies members reacting to their welcome prompt and opens
// the ticket selector for members reacting to a ticket panel.
func (b *Bot) HandleReaction(ctx context.Context, r discord.Reaction) error {
	switch r.Emoji {
	case b.VerifyEmoji:
		return b.verify(ctx, r)
	case ticketUsecases.PanelEmoji:
		return b.panelReaction(ctx, r)
	}
	return nil
}

func (b *Bot) verify(ctx context.Context, r discord.Reaction) error {
	res, err := b.Verify.Execute(ctx, welcomeUsecases.VerifyCommand{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
	})
	if err != nil {
		return err
	}
	if !res.Verified {
		b.logger.Debugw("reaction did not verify", "message_id", r.MessageID, "user_id", r.UserID, "reason", res.Reason)
	}
	return nil
}

// panelReaction resets the panel reaction and posts a short-lived category
// selector addressed to the member.
func (b *Bot) panelReaction(ctx context.Context, r discord.Reaction) error {
	ok, err := b.TicketPanel.IsPanel(ctx, r.MessageID)
	if err != nil || !ok {
		return err
	}

	if err := b.Messenger.RemoveReaction(ctx, r.ChannelID, r.MessageID, r.Emoji, r.UserID); err != nil {
		b.logger.Warnw("failed to remove panel reaction", "message_id", r.MessageID, "error", err)
	}

	embed, row := b.Views.TicketSelector(b.Tickets.Categories, false)
	messageID, err := b.Messenger.Send(ctx, r.ChannelID, &discordgo.MessageSend{
		Content:         views.UserMention(r.UserID),
		Embeds:          []*discordgo.MessageEmbed{embed},
		Components:      []discordgo.MessageComponent{row},
		AllowedMentions: &discordgo.MessageAllowedMentions{Users: []string{r.UserID}},
	})
	if err != nil {
		return err
	}

	channelID := r.ChannelID
	b.schedule(b.Tickets.SelectorLifetime, "delete-ticket-selector", func(ctx context.Context) error {
		return b.Messenger.DeleteMessage(ctx, channelID, messageID)
	})
	return nil
}
