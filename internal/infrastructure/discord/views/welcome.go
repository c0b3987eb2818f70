package views

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
)

const msgVerified = EmojiSuccess + " Welcome to the server! You now have full access."

func rulesReference(channelID string) string {
	if channelID == "" {
		return "#rules"
	}
	return ChannelMention(channelID)
}

// Welcome greets a member who just joined and explains how to verify.
func (v *Views) Welcome(n notice.Notice) *discordgo.MessageSend {
	verify := orDefault(n.VerifyEmoji, EmojiSuccess)
	server := orDefault(n.GuildName, "the server")

	embed := v.embed(fmt.Sprintf("Welcome to %s!", server), ColorPrimary)
	embed.Description = fmt.Sprintf(
		"Hey %s, welcome to **%s**!\n\nYou are member **#%d**.\n\n"+
			"**Before you can access the server:**\n1. Read the rules in %s\n"+
			"2. Once you have read and accept the rules, react with %s below",
		UserMention(n.UserID), server, n.MemberCount, rulesReference(n.RulesChannelID), verify)
	embed.Footer.Text = "React with " + verify + " after reading the rules"

	return &discordgo.MessageSend{
		Content:         UserMention(n.UserID),
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{Users: []string{n.UserID}},
	}
}

func (v *Views) Verified(n notice.Notice) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:         UserMention(n.UserID) + " " + msgVerified,
		AllowedMentions: &discordgo.MessageAllowedMentions{Users: []string{n.UserID}},
	}
}

func configured(value string, mention func(string) string) string {
	if value == "" {
		return EmojiError + " Not configured"
	}
	return mention(value)
}

// WelcomeStatus shows the welcome configuration and pending verifications.
func (v *Views) WelcomeStatus(s *welcomeUsecases.WelcomeStatus) *discordgo.MessageEmbed {
	embed := v.embed("Welcome System Status", ColorPrimary)

	channel := configured(s.ChannelID, ChannelMention)
	if s.ChannelID != "" && !s.WelcomeChannelFound {
		channel += " " + EmojiWarning + " not found"
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		field("Welcome Channel", channel, true),
		field("Rules Channel", configured(s.RulesChannelID, ChannelMention), true),
		field("Member Role", configured(s.MemberRoleID, RoleMention), true),
		field("Unverified Role", configured(s.UnverifiedRoleID, RoleMention), true),
		field("Verify Emoji", orDefault(s.VerifyEmoji, EmojiSuccess), true),
		field("Pending Verifications", v.Number(s.PendingCount), true),
	}
	embed.Footer.Text = "Configure in configs/config.yaml"
	return embed
}
