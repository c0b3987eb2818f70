package discordbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/shared/config"
	apperrors "github.com/corporatewarfare/cwbot/internal/shared/errors"
)

const (
	msgClaimed          = "✅ You have claimed this ticket."
	msgClosed           = "🔒 Ticket closed."
	msgCloseCancelled   = "Close cancelled."
	msgTranscriptReady  = "📝 Transcript generated."
	msgCreateFailed     = "❌ Failed to create ticket. Please try again."
	msgPanelCreated     = "✅ Ticket panel created."
	msgNoCategories     = "❌ No ticket categories are configured."
	msgUnknownCategory  = "❌ Unknown ticket category."
	transcriptMediaText = "text/plain"
	transcriptMediaHTML = "text/html"
)

func failure(o ticketUsecases.Outcome) string {
	return "❌ " + o.Reason.Message()
}

// ticketCommand answers /ticket with the category selector.
func (b *Bot) ticketCommand(req *interaction.Request, ev *interaction.CommandEvent) error {
	if len(b.Tickets.Categories) == 0 {
		return reply(req.Ctx, ev.Responder, msgNoCategories, true)
	}
	embed, row := b.Views.TicketSelector(b.Tickets.Categories, true)
	return ev.Responder.Reply(req.Ctx, interaction.Response{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
		Ephemeral:  true,
	})
}

func (b *Bot) ticketPanel(req *interaction.Request, ev *interaction.CommandEvent) error {
	if err := ev.Responder.Defer(req.Ctx, true); err != nil {
		return err
	}
	res, err := b.TicketPanel.Execute(req.Ctx, ticketUsecases.PostTicketPanelCommand{
		GuildID:   ev.GuildID,
		ChannelID: ev.ChannelID,
	})
	if err != nil {
		return err
	}
	req.Logger.Infow("ticket panel posted", "message_id", res.MessageID)
	return ev.Responder.Edit(req.Ctx, interaction.Response{Content: msgPanelCreated})
}

// categorySelect opens the ticket form for the chosen category.
func (b *Bot) categorySelect(req *interaction.Request, ev *interaction.SelectMenuEvent, _ string) error {
	if len(ev.Values) == 0 {
		return reply(req.Ctx, ev.Responder, msgUnknownCategory, true)
	}
	category, ok := b.lookupCategory(ev.Values[0])
	if !ok {
		return reply(req.Ctx, ev.Responder, msgUnknownCategory, true)
	}
	customID, title, components := views.CreateTicketModal(category)
	return ev.Responder.ShowModal(req.Ctx, interaction.Modal{
		CustomID:   customID,
		Title:      title,
		Components: components,
	})
}

func (b *Bot) createTicketModal(req *interaction.Request, ev *interaction.ModalEvent, categoryID string) error {
	if err := ev.Responder.Defer(req.Ctx, true); err != nil {
		return err
	}
	category, ok := b.lookupCategory(categoryID)
	if !ok {
		return ev.Responder.Edit(req.Ctx, interaction.Response{Content: msgUnknownCategory})
	}

	res, err := b.CreateTicket.Execute(req.Ctx, ticketUsecases.CreateTicketCommand{
		GuildID:           ev.GuildID,
		RequesterID:       ev.User.ID,
		RequesterUsername: ev.User.Username,
		Category:          category.ID,
		Subject:           strings.TrimSpace(ev.Fields[views.FieldTicketSubject]),
		Description:       strings.TrimSpace(ev.Fields[views.FieldTicketDescription]),
		ParentID:          b.Tickets.ParentCategoryID,
		StaffRoleID:       b.Tickets.StaffRoleID,
	})
	if err != nil {
		if apperrors.IsValidationError(err) {
			return ev.Responder.Edit(req.Ctx, interaction.Response{Content: "❌ " + apperrors.UserMessage(err)})
		}
		req.Logger.Errorw("failed to create ticket", "category", category.ID, "error", err)
		return ev.Responder.Edit(req.Ctx, interaction.Response{Content: msgCreateFailed})
	}
	return ev.Responder.Edit(req.Ctx, interaction.Response{Content: views.TicketCreatedMessage(res.Channel.ID)})
}

func (b *Bot) lookupCategory(id string) (config.TicketCategory, bool) {
	for _, c := range b.Tickets.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return config.TicketCategory{}, false
}

func (b *Bot) claimButton(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	res, err := b.ClaimTicket.Execute(req.Ctx, ticketUsecases.ClaimTicketCommand{
		ChannelID: ev.ChannelID,
		StaffID:   ev.User.ID,
	})
	if err != nil {
		return err
	}
	if !res.Success {
		return reply(req.Ctx, ev.Responder, failure(res.Outcome), true)
	}
	return reply(req.Ctx, ev.Responder, msgClaimed, true)
}

func (b *Bot) closeButton(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	content, row := views.CloseConfirmation()
	return ev.Responder.Reply(req.Ctx, interaction.Response{
		Content:    content,
		Components: []discordgo.MessageComponent{row},
		Ephemeral:  true,
	})
}

func (b *Bot) confirmCloseButton(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	content, err := b.close(req.Ctx, ev.ChannelID, ev.User.ID, "")
	if err != nil {
		return err
	}
	return ev.Responder.Update(req.Ctx, interaction.Response{Content: content})
}

func (b *Bot) cancelCloseButton(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	return ev.Responder.Update(req.Ctx, interaction.Response{Content: msgCloseCancelled})
}

func (b *Bot) closeReasonButton(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	customID, title, components := views.CloseReasonModal()
	return ev.Responder.ShowModal(req.Ctx, interaction.Modal{
		CustomID:   customID,
		Title:      title,
		Components: components,
	})
}

func (b *Bot) closeReasonModal(req *interaction.Request, ev *interaction.ModalEvent, _ string) error {
	if err := ev.Responder.Defer(req.Ctx, true); err != nil {
		return err
	}
	content, err := b.close(req.Ctx, ev.ChannelID, ev.User.ID, strings.TrimSpace(ev.Fields[views.FieldCloseReason]))
	if err != nil {
		return err
	}
	return ev.Responder.Edit(req.Ctx, interaction.Response{Content: content})
}

// close runs the close use case and returns the text to show the closer.
func (b *Bot) close(ctx context.Context, channelID, userID, reason string) (string, error) {
	res, err := b.CloseTicket.Execute(ctx, ticketUsecases.CloseTicketCommand{
		ChannelID: channelID,
		ClosedBy:  userID,
		Reason:    reason,
	})
	if err != nil {
		return "", err
	}
	if !res.Success {
		return failure(res.Outcome), nil
	}
	return msgClosed, nil
}

func (b *Bot) transcriptButton(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	if err := ev.Responder.Defer(req.Ctx, true); err != nil {
		return err
	}
	res, err := b.Transcript.Execute(req.Ctx, ticketUsecases.GenerateTranscriptQuery{ChannelID: ev.ChannelID})
	if err != nil {
		return err
	}
	if !res.Success {
		return ev.Responder.Edit(req.Ctx, interaction.Response{Content: failure(res.Outcome)})
	}
	return ev.Responder.Edit(req.Ctx, interaction.Response{
		Content: msgTranscriptReady,
		Files: []*discordgo.File{
			{Name: res.FileName + ".txt", ContentType: transcriptMediaText, Reader: strings.NewReader(res.Text)},
			{Name: res.FileName + ".html", ContentType: transcriptMediaHTML, Reader: strings.NewReader(res.HTML)},
		},
	})
}

// deleteButton announces the delete and removes the ticket after the
// configured delay.
func (b *Bot) deleteButton(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	delay := b.Tickets.DeleteDelay
	if err := reply(req.Ctx, ev.Responder, deleteMessage(delay.Seconds()), false); err != nil {
		return err
	}
	channelID := ev.ChannelID
	b.schedule(delay, "delete-ticket", func(ctx context.Context) error {
		_, err := b.DeleteTicket.Execute(ctx, ticketUsecases.DeleteTicketCommand{ChannelID: channelID})
		return err
	})
	return nil
}

func deleteMessage(seconds float64) string {
	n := int(seconds)
	if n == 1 {
		return "🗑️ Deleting ticket in 1 second..."
	}
	return fmt.Sprintf("🗑️ Deleting ticket in %d seconds...", n)
}
