package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corporatewarfare/cwbot/internal/interfaces/cli/bot"
	"github.com/corporatewarfare/cwbot/internal/interfaces/cli/commands"
	"github.com/corporatewarfare/cwbot/internal/interfaces/cli/migrate"
	"github.com/corporatewarfare/cwbot/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cwbot",
		Short:   "Corporate Warfare Discord bot",
		Long:    `cwbot runs the Corporate Warfare community bot: support tickets, member verification and game lookups.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		bot.NewCommand(),
		migrate.NewCommand(),
		commands.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
