package views

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

const (
	CategoryAdmin   = "Admin"
	CategoryTickets = "Tickets"
	CategoryUtility = "Utility"

	// ContextViewProfile is the user context menu entry.
	ContextViewProfile = "View Profile"
)

type categoryInfo struct {
	Emoji       string
	Description string
	Order       int
}

var categories = map[string]categoryInfo{
	CategoryAdmin:   {Emoji: EmojiAdmin, Description: "Server administration commands", Order: 1},
	CategoryTickets: {Emoji: EmojiTicket, Description: "Support ticket system", Order: 2},
	CategoryUtility: {Emoji: EmojiUtility, Description: "General utility commands", Order: 3},
}

var uncategorized = categoryInfo{Emoji: EmojiFolder, Description: "Other commands", Order: 99}

func lookupCategory(name string) categoryInfo {
	if c, ok := categories[name]; ok {
		return c
	}
	return uncategorized
}

// Command is one registered application command and the help category it
// is listed under.
type Command struct {
	Category   string
	Definition *discordgo.ApplicationCommand
}

// RequiredPermissions is the permission set a member needs to see the
// command, or 0.
func (c Command) RequiredPermissions() int64 {
	if c.Definition.DefaultMemberPermissions == nil {
		return 0
	}
	return *c.Definition.DefaultMemberPermissions
}

// VisibleTo reports whether a member with perms can use the command.
func (c Command) VisibleTo(perms int64) bool {
	required := c.RequiredPermissions()
	if required == 0 || perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&required == required
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

// Catalog lists every command the bot registers.
func Catalog() []Command {
	admin := int64Ptr(discordgo.PermissionAdministrator)
	noDM := new(bool)

	sortChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(sortOptions))
	for _, o := range sortOptions {
		sortChoices = append(sortChoices, &discordgo.ApplicationCommandOptionChoice{Name: o.Label, Value: o.Key})
	}

	return []Command{
		{Category: CategoryAdmin, Definition: &discordgo.ApplicationCommand{
			Name:        "ping",
			Description: "Check bot latency",
		}},
		{Category: CategoryAdmin, Definition: &discordgo.ApplicationCommand{
			Name:                     "sync",
			Description:              "Sync Discord members with website profiles",
			DefaultMemberPermissions: admin,
			DMPermission:             noDM,
		}},
		{Category: CategoryAdmin, Definition: &discordgo.ApplicationCommand{
			Name:                     "welcome",
			Description:              "Welcome system commands",
			DefaultMemberPermissions: admin,
			DMPermission:             noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "test", Description: "Test the welcome message"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "status", Description: "View current welcome settings"},
			},
		}},
		{Category: CategoryTickets, Definition: &discordgo.ApplicationCommand{
			Name:         "ticket",
			Description:  "Create a support ticket",
			DMPermission: noDM,
		}},
		{Category: CategoryTickets, Definition: &discordgo.ApplicationCommand{
			Name:                     "ticket-panel",
			Description:              "Post a ticket panel members can react to",
			DefaultMemberPermissions: admin,
			DMPermission:             noDM,
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name:        "help",
			Description: "Show available commands",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "command",
				Description:  "Show details for one command",
				Autocomplete: true,
			}},
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name:        "profile",
			Description: "Lookup a Corporate Warfare player profile",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "id",
				Description: "The player profile ID (defaults to your linked profile)",
				MinValue:    float64Ptr(1),
			}},
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name:        "corporation",
			Description: "Lookup a Corporate Warfare corporation",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "id",
				Description: "The corporation ID",
				Required:    true,
				MinValue:    float64Ptr(1),
			}},
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name:        "leaderboard",
			Description: "Display the Corporate Warfare wealth leaderboard",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sort",
					Description: "What to rank players by",
					Choices:     sortChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "page",
					Description: "Page number",
					MinValue:    float64Ptr(1),
				},
			},
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name:        "time",
			Description: "Show the current game time",
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name:        "state",
			Description: "View market information for a specific state",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "code",
				Description: "Two-letter state code (e.g., CA, NY)",
				Required:    true,
				MinLength:   intPtr(2),
				MaxLength:   2,
			}},
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name:        "market",
			Description: "View global market information",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "commodities", Description: "View current commodity prices"},
			},
		}},
		{Category: CategoryUtility, Definition: &discordgo.ApplicationCommand{
			Name: ContextViewProfile,
			Type: discordgo.UserApplicationCommand,
		}},
	}
}

// Definitions returns the application commands to register.
func Definitions() []*discordgo.ApplicationCommand {
	catalog := Catalog()
	out := make([]*discordgo.ApplicationCommand, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, c.Definition)
	}
	return out
}

// slashCommands filters the catalog to slash commands visible to perms.
func slashCommands(perms int64) []Command {
	var out []Command
	for _, c := range Catalog() {
		if c.Definition.Type != 0 && c.Definition.Type != discordgo.ChatApplicationCommand {
			continue
		}
		if c.VisibleTo(perms) {
			out = append(out, c)
		}
	}
	return out
}

type categoryGroup struct {
	Name     string
	Info     categoryInfo
	Commands []Command
}

func groupByCategory(commands []Command) []categoryGroup {
	index := make(map[string]int)
	var groups []categoryGroup
	for _, c := range commands {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, categoryGroup{Name: c.Category, Info: lookupCategory(c.Category)})
		}
		groups[i].Commands = append(groups[i].Commands, c)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Info.Order < groups[b].Info.Order })
	return groups
}

// FindCommand looks up a slash command by name.
func FindCommand(name string) (Command, bool) {
	for _, c := range Catalog() {
		if c.Definition.Name == name {
			return c, true
		}
	}
	return Command{}, false
}
