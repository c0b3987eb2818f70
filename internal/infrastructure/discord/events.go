package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
)

// toEvent converts a gateway interaction into a router event. It returns nil
// for interaction types the router does not handle.
func toEvent(i *discordgo.Interaction, resp interaction.Responder) interaction.Event {
	base := interaction.Base{
		ID:        i.ID,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Responder: resp,
	}
	switch {
	case i.Member != nil:
		base.User = toUser(i.Member.User)
		base.Permissions = i.Member.Permissions
	case i.User != nil:
		base.User = toUser(i.User)
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if data.CommandType == discordgo.UserApplicationCommand || data.CommandType == discordgo.MessageApplicationCommand {
			return &interaction.ContextMenuEvent{
				Base:      base,
				Name:      data.Name,
				TargetID:  data.TargetID,
				OnMessage: data.CommandType == discordgo.MessageApplicationCommand,
			}
		}
		sub, options := flattenOptions(data.Options)
		return &interaction.CommandEvent{
			Base:       base,
			Name:       data.Name,
			Subcommand: sub,
			Options:    options,
		}

	case discordgo.InteractionApplicationCommandAutocomplete:
		data := i.ApplicationCommandData()
		ev := &interaction.AutocompleteEvent{Base: base, Name: data.Name}
		if focused := findFocused(data.Options); focused != nil {
			ev.Focused = focused.Name
			ev.Value = fmt.Sprint(focused.Value)
		}
		return ev

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		messageID := ""
		if i.Message != nil {
			messageID = i.Message.ID
		}
		if data.ComponentType == discordgo.ButtonComponent {
			return &interaction.ButtonEvent{Base: base, CustomID: data.CustomID, MessageID: messageID}
		}
		return &interaction.SelectMenuEvent{
			Base:      base,
			CustomID:  data.CustomID,
			MessageID: messageID,
			Values:    data.Values,
		}

	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		return &interaction.ModalEvent{
			Base:     base,
			CustomID: data.CustomID,
			Fields:   modalFields(data.Components),
		}
	}
	return nil
}

func toUser(u *discordgo.User) interaction.User {
	if u == nil {
		return interaction.User{}
	}
	return interaction.User{
		ID:         u.ID,
		Username:   u.Username,
		GlobalName: u.GlobalName,
		Avatar:     u.Avatar,
		Bot:        u.Bot,
	}
}

// flattenOptions unwraps subcommand groups and subcommands. A grouped
// subcommand is named "group sub".
func flattenOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) (string, map[string]any) {
	values := make(map[string]any)
	sub := ""
	for len(opts) == 1 && (opts[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup ||
		opts[0].Type == discordgo.ApplicationCommandOptionSubCommand) {
		if sub == "" {
			sub = opts[0].Name
		} else {
			sub += " " + opts[0].Name
		}
		opts = opts[0].Options
	}
	for _, o := range opts {
		values[o.Name] = o.Value
	}
	return sub, values
}

func findFocused(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range opts {
		if o.Focused {
			return o
		}
		if found := findFocused(o.Options); found != nil {
			return found
		}
	}
	return nil
}

func modalFields(components []discordgo.MessageComponent) map[string]string {
	fields := make(map[string]string)
	for _, c := range components {
		switch v := c.(type) {
		case *discordgo.ActionsRow:
			for k, val := range modalFields(v.Components) {
				fields[k] = val
			}
		case discordgo.ActionsRow:
			for k, val := range modalFields(v.Components) {
				fields[k] = val
			}
		case *discordgo.TextInput:
			fields[v.CustomID] = v.Value
		case discordgo.TextInput:
			fields[v.CustomID] = v.Value
		}
	}
	return fields
}
