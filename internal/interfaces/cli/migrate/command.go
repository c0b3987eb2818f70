package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corporatewarfare/cwbot/internal/infrastructure/config"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/database"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/migration"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply the embedded schema migrations or report which of them have run.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Run mode override (debug, release)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.WithComponent("migrate"), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "driver", cfg.Database.Driver)

	if err := migration.NewGooseStrategy(cfg.Database.Driver).Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	statuses, err := migration.NewGooseStrategy(cfg.Database.Driver).Status(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s %-8s %s\n", "VERSION", "APPLIED", "SOURCE")
	for _, s := range statuses {
		applied := "no"
		if s.Applied {
			applied = "yes"
		}
		fmt.Fprintf(out, "%-16d %-8s %s\n", s.Version, applied, filepath.Base(s.Source))
	}
	return nil
}
