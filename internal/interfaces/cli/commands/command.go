// Package commands manages the registered application commands.
package commands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/corporatewarfare/cwbot/internal/infrastructure/config"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

var (
	configPath string
	guildID    string
)

// Registrar is the part of *discordgo.Session that overwrites commands.
type Registrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Manage application commands",
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	register := &cobra.Command{
		Use:   "register",
		Short: "Overwrite the registered slash and context menu commands",
		Long:  `Replace every application command with the bot's catalog. With a guild id the commands are registered to that guild only and appear immediately.`,
		RunE:  runRegister,
	}
	register.Flags().StringVarP(&guildID, "guild", "g", "", "Guild to register in (default: discord.guild_id, empty for global)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the command catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range views.Catalog() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s /%s\n", c.Category, c.Definition.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(register, list)
	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("", configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.Discord.Token == "" || cfg.Discord.ApplicationID == "" {
		return errors.New("discord token and application id are required")
	}

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return err
	}

	target := guildID
	if target == "" {
		target = cfg.Discord.GuildID
	}

	registered, err := Register(session, cfg.Discord.ApplicationID, target)
	if err != nil {
		return err
	}

	logger.WithComponent("commands").Infow("commands registered",
		"count", len(registered),
		"guild_id", target)
	return nil
}

// Register overwrites the application's commands in guildID, or globally
// when guildID is empty.
func Register(r Registrar, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	registered, err := r.ApplicationCommandBulkOverwrite(appID, guildID, views.Definitions())
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	return registered, nil
}
