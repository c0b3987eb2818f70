package discordbot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
)

// maxChoices is the most autocomplete choices Discord accepts.
const maxChoices = 25

func (b *Bot) help(req *interaction.Request, ev *interaction.CommandEvent) error {
	if name := ev.StringOption("command"); name != "" {
		cmd, ok := views.FindCommand(name)
		if !ok || !cmd.VisibleTo(ev.Permissions) {
			return reply(req.Ctx, ev.Responder, "❌ Command `/"+name+"` not found.", true)
		}
		embed, components := b.Views.HelpCommand(cmd)
		return ev.Responder.Reply(req.Ctx, helpResponse(embed, components, true))
	}
	embed, components := b.Views.HelpMain(ev.Permissions)
	return ev.Responder.Reply(req.Ctx, helpResponse(embed, components, true))
}

// helpSelect serves both help menus; the value says which page to show.
func (b *Bot) helpSelect(req *interaction.Request, ev *interaction.SelectMenuEvent, _ string) error {
	if len(ev.Values) == 0 {
		return ev.Responder.DeferUpdate(req.Ctx)
	}
	kind, name := views.ParseHelpValue(ev.Values[0])
	switch kind {
	case "category":
		embed, components := b.Views.HelpCategory(name, ev.Permissions)
		return ev.Responder.Update(req.Ctx, helpResponse(embed, components, false))
	case "command":
		if cmd, ok := views.FindCommand(name); ok && cmd.VisibleTo(ev.Permissions) {
			embed, components := b.Views.HelpCommand(cmd)
			return ev.Responder.Update(req.Ctx, helpResponse(embed, components, false))
		}
	}
	embed, components := b.Views.HelpMain(ev.Permissions)
	return ev.Responder.Update(req.Ctx, helpResponse(embed, components, false))
}

func (b *Bot) helpBack(req *interaction.Request, ev *interaction.ButtonEvent, _ string) error {
	embed, components := b.Views.HelpMain(ev.Permissions)
	return ev.Responder.Update(req.Ctx, helpResponse(embed, components, false))
}

func (b *Bot) helpAutocomplete(req *interaction.Request, ev *interaction.AutocompleteEvent) error {
	names := views.CompleteCommand(ev.Value, ev.Permissions, maxChoices)
	choices := make([]interaction.Choice, 0, len(names))
	for _, n := range names {
		choices = append(choices, interaction.Choice{Name: "/" + n, Value: n})
	}
	return ev.Responder.Autocomplete(req.Ctx, choices)
}

func helpResponse(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) interaction.Response {
	return interaction.Response{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Ephemeral:  ephemeral,
	}
}
