package views

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/shared/config"
)

const (
	msgTicketCreated = "Your ticket has been created! Staff will be with you shortly."
	msgTicketClaimed = "This ticket has been claimed by %s."

	PanelTitle = EmojiTicket + " Support Tickets"
)

// TicketSelector is the category prompt shown by /ticket and by reacting to
// a ticket panel.
func (v *Views) TicketSelector(categories []config.TicketCategory, withFields bool) (*discordgo.MessageEmbed, discordgo.ActionsRow) {
	embed := v.embed(EmojiTicket+" Create a Ticket", ColorPrimary)
	embed.Description = "Please select a category for your ticket below.\n\n" +
		"A private channel will be created for you to discuss your issue with our staff."

	options := make([]discordgo.SelectMenuOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, discordgo.SelectMenuOption{
			Label:       c.Label,
			Value:       c.ID,
			Description: truncate(c.Description, 100),
			Emoji:       emoji(c.Emoji),
		})
		if withFields {
			embed.Fields = append(embed.Fields, field(c.Emoji+" "+c.Label, orDefault(c.Description, "\u200b"), true))
		}
	}

	row := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    IDTicketCategorySelect,
			Placeholder: "Select a ticket category",
			Options:     options,
		},
	}}
	return embed, row
}

// TicketPanel is the persistent message members react to with 🎫.
func (v *Views) TicketPanel(categories []config.TicketCategory) *discordgo.MessageEmbed {
	embed := v.embed(PanelTitle, ColorPrimary)
	embed.Description = "Need help? React with " + EmojiTicket + " below to open a private support ticket."
	for _, c := range categories {
		embed.Fields = append(embed.Fields, field(c.Emoji+" "+c.Label, orDefault(c.Description, "\u200b"), true))
	}
	return embed
}

// CreateTicketModal asks for the ticket details. The category travels in the
// modal custom id.
func CreateTicketModal(category config.TicketCategory) (customID, title string, components []discordgo.MessageComponent) {
	title = "Create Ticket"
	if category.Label != "" {
		title = truncate("Create Ticket: "+category.Label, 45)
	}
	components = []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    FieldTicketSubject,
				Label:       "Subject",
				Style:       discordgo.TextInputShort,
				Placeholder: "Brief summary of your issue",
				Required:    true,
				MaxLength:   100,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    FieldTicketDescription,
				Label:       "Description",
				Style:       discordgo.TextInputParagraph,
				Placeholder: "Please describe your issue in detail",
				Required:    true,
				MaxLength:   1000,
			},
		}},
	}
	return IDTicketCreateModal + ":" + category.ID, title, components
}

func CloseReasonModal() (customID, title string, components []discordgo.MessageComponent) {
	components = []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    FieldCloseReason,
				Label:       "Reason",
				Style:       discordgo.TextInputParagraph,
				Placeholder: "Why is this ticket being closed?",
				Required:    false,
				MaxLength:   500,
			},
		}},
	}
	return IDTicketCloseModal, "Close Ticket", components
}

// TicketOpened is the intro message posted and pinned in a new ticket
// channel.
func (v *Views) TicketOpened(n notice.Notice, category config.TicketCategory) *discordgo.MessageSend {
	embed := v.embed(fmt.Sprintf("%s Ticket #%d", orDefault(category.Emoji, EmojiTicket), n.TicketNumber), ColorTicketOpen)
	embed.Description = orDefault(n.Description, "No description provided.")
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Category", orDefault(category.Label, n.Category), true),
		field("Subject", orDefault(n.Subject, "No subject"), true),
		field("Created By", UserMention(n.UserID), true),
	}

	content := UserMention(n.UserID)
	mentions := &discordgo.MessageAllowedMentions{Users: []string{n.UserID}}
	if n.StaffRoleID != "" {
		content += " " + RoleMention(n.StaffRoleID)
		mentions.Roles = []string{n.StaffRoleID}
	}

	return &discordgo.MessageSend{
		Content:         content,
		Embeds:          []*discordgo.MessageEmbed{embed},
		Components:      []discordgo.MessageComponent{TicketActions()},
		AllowedMentions: mentions,
	}
}

func TicketActions() discordgo.ActionsRow {
	return buttonRow(
		discordgo.Button{Label: "Claim", Style: discordgo.PrimaryButton, CustomID: IDTicketClaim, Emoji: emoji(EmojiClaim)},
		discordgo.Button{Label: "Close", Style: discordgo.DangerButton, CustomID: IDTicketClose, Emoji: emoji(EmojiClose)},
		discordgo.Button{Label: "Transcript", Style: discordgo.SecondaryButton, CustomID: IDTicketTranscript, Emoji: emoji(EmojiTranscript)},
	)
}

func (v *Views) TicketClaimed(n notice.Notice) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Color:       ColorTicketClaimed,
		Description: EmojiClaim + " " + fmt.Sprintf(msgTicketClaimed, UserMention(n.ActorID)),
		Timestamp:   v.now().UTC().Format(time.RFC3339),
	}
	return &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}}
}

func (v *Views) TicketClosed(n notice.Notice) *discordgo.MessageSend {
	embed := v.embed(EmojiClose+" Ticket Closed", ColorTicketClosed)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Closed By", UserMention(n.ActorID), true),
		field("Reason", orDefault(n.Reason, "No reason provided."), true),
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{ClosedActions()},
	}
}

func ClosedActions() discordgo.ActionsRow {
	return buttonRow(
		discordgo.Button{Label: "Save Transcript", Style: discordgo.SecondaryButton, CustomID: IDTicketTranscript, Emoji: emoji(EmojiTranscript)},
		discordgo.Button{Label: "Delete Ticket", Style: discordgo.DangerButton, CustomID: IDTicketDelete, Emoji: emoji(EmojiDelete)},
	)
}

// CloseConfirmation asks the user to confirm before a ticket is closed.
func CloseConfirmation() (string, discordgo.ActionsRow) {
	return "Are you sure you want to close this ticket?", buttonRow(
		discordgo.Button{Label: "Confirm Close", Style: discordgo.DangerButton, CustomID: IDTicketConfirmClose},
		discordgo.Button{Label: "Close with Reason", Style: discordgo.PrimaryButton, CustomID: IDTicketCloseReason},
		discordgo.Button{Label: "Cancel", Style: discordgo.SecondaryButton, CustomID: IDTicketCancelClose},
	)
}

func TicketCreatedMessage(channelID string) string {
	return EmojiSuccess + " " + msgTicketCreated + "\n\nYour ticket: " + ChannelMention(channelID)
}
