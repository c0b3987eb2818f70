package views

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func subcommands(def *discordgo.ApplicationCommand) []*discordgo.ApplicationCommandOption {
	var out []*discordgo.ApplicationCommandOption
	for _, o := range def.Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			out = append(out, o)
		}
	}
	return out
}

// HelpMain lists the categories the member can use.
func (v *Views) HelpMain(perms int64) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	commands := slashCommands(perms)
	groups := groupByCategory(commands)

	embed := v.embed(EmojiHelp+" Corporate Warfare - Help", ColorPrimary)
	embed.Description = "Select a category below to view available commands.\n\u200b"
	embed.Footer.Text = plural(len(commands), "command") + " available"

	options := make([]discordgo.SelectMenuOption, 0, len(groups))
	for _, g := range groups {
		embed.Fields = append(embed.Fields, field(
			g.Info.Emoji+" "+g.Name,
			fmt.Sprintf("%s\n`%s`", g.Info.Description, plural(len(g.Commands), "command")),
			true))
		options = append(options, discordgo.SelectMenuOption{
			Label:       g.Name,
			Value:       helpCategoryPrefix + g.Name,
			Description: truncate(g.Info.Description, 50),
			Emoji:       emoji(g.Info.Emoji),
		})
	}

	var components []discordgo.MessageComponent
	if len(options) > 0 {
		components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    IDHelpCategorySelect,
				Placeholder: "Select a category",
				Options:     options,
			},
		}})
	}
	return embed, components
}

// HelpCategory lists one category's commands with a command picker.
func (v *Views) HelpCategory(name string, perms int64) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	info := lookupCategory(name)
	var commands []Command
	for _, c := range slashCommands(perms) {
		if c.Category == name {
			commands = append(commands, c)
		}
	}

	embed := v.embed(info.Emoji+" "+name+" Commands", ColorPrimary)
	embed.Description = info.Description + "\n\u200b"

	if len(commands) == 0 {
		embed.Fields = append(embed.Fields, field("No Commands", "No commands available in this category.", false))
		return embed, []discordgo.MessageComponent{backButton()}
	}

	options := make([]discordgo.SelectMenuOption, 0, len(commands))
	for _, c := range commands {
		def := c.Definition
		if subs := subcommands(def); len(subs) > 0 {
			lines := make([]string, 0, len(subs))
			for _, s := range subs {
				lines = append(lines, fmt.Sprintf("`/%s %s` - %s", def.Name, s.Name, s.Description))
			}
			embed.Fields = append(embed.Fields, field("/"+def.Name, strings.Join(lines, "\n"), false))
		} else {
			embed.Fields = append(embed.Fields, field("/"+def.Name, def.Description, true))
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       "/" + def.Name,
			Value:       helpCommandPrefix + def.Name,
			Description: truncate(def.Description, 50),
		})
	}

	return embed, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    IDHelpCommandSelect,
				Placeholder: "Select a command for details",
				Options:     options,
			},
		}},
		backButton(),
	}
}

// HelpCommand details one command's subcommands and options.
func (v *Views) HelpCommand(c Command) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	def := c.Definition
	info := lookupCategory(c.Category)

	embed := v.embed(info.Emoji+" /"+def.Name, ColorPrimary)
	embed.Description = def.Description

	if subs := subcommands(def); len(subs) > 0 {
		lines := make([]string, 0, len(subs))
		for _, s := range subs {
			lines = append(lines, fmt.Sprintf("`%s` - %s", s.Name, s.Description))
		}
		embed.Fields = append(embed.Fields, field("Subcommands", strings.Join(lines, "\n"), false))
	}

	var opts []string
	for _, o := range def.Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand || o.Type == discordgo.ApplicationCommandOptionSubCommandGroup {
			continue
		}
		line := fmt.Sprintf("`%s` - %s", o.Name, o.Description)
		if o.Required {
			line += " *(required)*"
		}
		opts = append(opts, line)
	}
	if len(opts) > 0 {
		embed.Fields = append(embed.Fields, field("Options", strings.Join(opts, "\n"), false))
	}
	return embed, []discordgo.MessageComponent{backButton()}
}

func backButton() discordgo.ActionsRow {
	return buttonRow(discordgo.Button{Label: "Back to Categories", Style: discordgo.SecondaryButton, CustomID: IDHelpBack})
}

// ParseHelpValue splits a help menu value into its kind ("category" or
// "command") and name.
func ParseHelpValue(value string) (kind, name string) {
	switch {
	case strings.HasPrefix(value, helpCategoryPrefix):
		return "category", strings.TrimPrefix(value, helpCategoryPrefix)
	case strings.HasPrefix(value, helpCommandPrefix):
		return "command", strings.TrimPrefix(value, helpCommandPrefix)
	}
	return "", value
}

// CompleteCommand suggests slash command names starting with prefix.
func CompleteCommand(prefix string, perms int64, limit int) []string {
	prefix = strings.ToLower(strings.TrimPrefix(prefix, "/"))
	var out []string
	for _, c := range slashCommands(perms) {
		if strings.HasPrefix(c.Definition.Name, prefix) {
			out = append(out, c.Definition.Name)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
