package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
)

// responder answers one interaction and tracks which response was sent.
type responder struct {
	rest     InteractionREST
	i        *discordgo.Interaction
	canReply bool

	mu       sync.Mutex
	replied  bool
	deferred bool
}

var _ interaction.Responder = (*responder)(nil)

func newResponder(rest InteractionREST, i *discordgo.Interaction) *responder {
	return &responder{
		rest:     rest,
		i:        i,
		canReply: i.Type != discordgo.InteractionApplicationCommandAutocomplete,
	}
}

func (r *responder) CanReply() bool { return r.canReply }

func (r *responder) Replied() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replied
}

func (r *responder) Deferred() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deferred
}

func (r *responder) mark(replied, deferred bool) {
	r.mu.Lock()
	r.replied = r.replied || replied
	r.deferred = r.deferred || deferred
	r.mu.Unlock()
}

func flags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func responseData(resp interaction.Response) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    resp.Content,
		Embeds:     resp.Embeds,
		Components: resp.Components,
		Files:      resp.Files,
		Flags:      flags(resp.Ephemeral),
	}
}

func (r *responder) respond(ctx context.Context, resp *discordgo.InteractionResponse) error {
	return r.rest.InteractionRespond(r.i, resp, discordgo.WithContext(ctx))
}

func (r *responder) Reply(ctx context.Context, resp interaction.Response) error {
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(resp),
	})
	if err == nil {
		r.mark(true, false)
	}
	return err
}

func (r *responder) Defer(ctx context.Context, ephemeral bool) error {
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags(ephemeral)},
	})
	if err == nil {
		r.mark(false, true)
	}
	return err
}

func (r *responder) DeferUpdate(ctx context.Context) error {
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err == nil {
		r.mark(false, true)
	}
	return err
}

func (r *responder) Update(ctx context.Context, resp interaction.Response) error {
	data := responseData(resp)
	data.Flags = 0
	if data.Components == nil {
		data.Components = []discordgo.MessageComponent{}
	}
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
	if err == nil {
		r.mark(true, false)
	}
	return err
}

// Edit replaces the original response wholesale; fields left empty in resp
// are cleared.
func (r *responder) Edit(ctx context.Context, resp interaction.Response) error {
	content := resp.Content
	embeds := resp.Embeds
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	components := resp.Components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	_, err := r.rest.InteractionResponseEdit(r.i, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
		Files:      resp.Files,
	}, discordgo.WithContext(ctx))
	if err == nil {
		r.mark(true, false)
	}
	return err
}

func (r *responder) Followup(ctx context.Context, resp interaction.Response) (string, error) {
	m, err := r.rest.FollowupMessageCreate(r.i, true, &discordgo.WebhookParams{
		Content:    resp.Content,
		Embeds:     resp.Embeds,
		Components: resp.Components,
		Files:      resp.Files,
		Flags:      flags(resp.Ephemeral),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (r *responder) ShowModal(ctx context.Context, m interaction.Modal) error {
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   m.CustomID,
			Title:      m.Title,
			Components: m.Components,
		},
	})
	if err == nil {
		r.mark(true, false)
	}
	return err
}

func (r *responder) Autocomplete(ctx context.Context, choices []interaction.Choice) error {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(choices))
	for _, c := range choices {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: c.Value})
	}
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: out},
	})
	if err == nil {
		r.mark(true, false)
	}
	return err
}

func (r *responder) DeleteOriginal(ctx context.Context) error {
	return r.rest.InteractionResponseDelete(r.i, discordgo.WithContext(ctx))
}
