// Package bot runs the Discord bot with its scheduler and status server.
package bot

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	memberUsecases "github.com/corporatewarfare/cwbot/internal/application/member/usecases"
	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/cache"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/config"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/database"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/gameapi"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/migration"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/repository"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/scheduler"
	"github.com/corporatewarfare/cwbot/internal/interfaces/discordbot"
	httpRouter "github.com/corporatewarfare/cwbot/internal/interfaces/http"
	"github.com/corporatewarfare/cwbot/internal/interfaces/http/handlers"
	tickethandlers "github.com/corporatewarfare/cwbot/internal/interfaces/http/handlers/ticket"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction/middleware"
	"github.com/corporatewarfare/cwbot/internal/shared/db"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
	"github.com/corporatewarfare/cwbot/internal/shared/version"
)

const apiCachePrefix = "cwbot:api:"

var (
	env         string
	configPath  string
	skipMigrate bool
	noStatus    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot",
		Long:  `Connect to the Discord gateway and serve commands, tickets and welcomes until interrupted.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Run mode override (debug, release)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply pending migrations on startup")
	cmd.Flags().BoolVar(&noStatus, "no-status", false, "Do not start the HTTP status server")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.WithComponent("bot")

	if cfg.Discord.Token == "" {
		return errors.New("discord token is required (set CWBOT_DISCORD_TOKEN)")
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	gdb := database.Get()

	if skipMigrate {
		log.Infow("skipping migrations")
	} else if err := migration.NewGooseStrategy(cfg.Database.Driver).Migrate(gdb); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	store, closeStore, err := newAPIStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return err
	}

	api := gameapi.NewClient(cfg.API, store, logger.WithComponent("gameapi"))
	platform := discord.NewPlatform(session)
	v := views.New(cfg.Discord.FooterText, cfg.API.SiteURL)
	notifier := discord.NewNotifier(platform, v, cfg.Tickets)

	ticketRepo := repository.NewTicketRepository(gdb)
	introRepo := repository.NewTicketIntroRepository(gdb)
	stateRepo := repository.NewWelcomeStateRepository(gdb)
	mappingRepo := repository.NewUserMappingRepository(gdb)

	welcomeSettings := welcomeUsecases.Settings{
		ChannelID:        cfg.Welcome.ChannelID,
		RulesChannelID:   cfg.Welcome.RulesChannelID,
		UnverifiedRoleID: cfg.Welcome.UnverifiedRoleID,
		MemberRoleID:     cfg.Welcome.MemberRoleID,
		VerifyEmoji:      cfg.Welcome.VerifyEmoji,
		Retention:        time.Duration(cfg.Welcome.RetentionHours) * time.Hour,
	}

	bot := discordbot.New(discordbot.Deps{
		CreateTicket: ticketUsecases.NewCreateTicketUseCase(
			ticketRepo,
			ticket.NewGuildNumberGenerator(ticketRepo),
			platform,
			notifier,
			ticketUsecases.CreateTicketDefaults{
				ChannelPrefix: cfg.Tickets.ChannelPrefix,
				ParentID:      cfg.Tickets.ParentCategoryID,
				StaffRoleID:   cfg.Tickets.StaffRoleID,
			},
			logger.WithComponent("ticket.create"),
		),
		ClaimTicket:   ticketUsecases.NewClaimTicketUseCase(ticketRepo, notifier, logger.WithComponent("ticket.claim")),
		CloseTicket:   ticketUsecases.NewCloseTicketUseCase(ticketRepo, platform, notifier, logger.WithComponent("ticket.close")),
		Transcript:    ticketUsecases.NewGenerateTranscriptUseCase(ticketRepo, platform, logger.WithComponent("ticket.transcript")),
		DeleteTicket:  ticketUsecases.NewDeleteTicketUseCase(ticketRepo, platform, logger.WithComponent("ticket.delete")),
		TicketPanel:   ticketUsecases.NewTicketPanelUseCase(introRepo, notifier, platform, logger.WithComponent("ticket.panel")),
		Welcome:       welcomeUsecases.NewHandleMemberJoinUseCase(stateRepo, platform, notifier, welcomeSettings, logger.WithComponent("welcome.join")),
		Verify:        welcomeUsecases.NewHandleVerificationUseCase(stateRepo, platform, notifier, welcomeSettings, logger.WithComponent("welcome.verify")),
		WelcomeStatus: welcomeUsecases.NewGetWelcomeStatusUseCase(stateRepo, platform, welcomeSettings, logger.WithComponent("welcome.status")),
		SyncMembers: memberUsecases.NewSyncMembersUseCase(api, mappingRepo, logger.WithComponent("member.sync")).
			WithTransactor(db.NewTransactionManager(gdb)),
		LinkedProfile: memberUsecases.NewGetLinkedProfileUseCase(mappingRepo, logger.WithComponent("member.profile")),
		Game:          api,
		Messenger:     platform,
		Views:         v,
		Tickets:       cfg.Tickets,
		VerifyEmoji:   cfg.Welcome.VerifyEmoji,
		Latency:       session.HeartbeatLatency,
		GuildInfo:     guildInfo(session),
	}, logger.WithComponent("discordbot"))

	cooldown := middleware.NewCooldown(cfg.Cooldown, logger.WithComponent("cooldown"))
	router := interaction.NewRouter(logger.WithComponent("interaction"))
	router.Use(cooldown.Middleware())
	bot.Register(router)

	gateway := discord.NewGateway(session, router, bot, logger.WithComponent("gateway"))

	jobs, err := scheduler.NewSchedulerManager(logger.WithComponent("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := jobs.RegisterCooldownSweep(cooldown, cfg.Cooldown.SweepInterval); err != nil {
		return err
	}
	cleanup := welcomeUsecases.NewCleanupStaleStatesUseCase(stateRepo, welcomeSettings.Retention, logger.WithComponent("welcome.cleanup"))
	if err := jobs.RegisterWelcomeCleanup(cleanup, scheduler.DefaultCleanupInterval); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("starting bot",
		"version", version.String(),
		"mode", cfg.Server.Mode,
		"database", cfg.Database.Driver,
		"redis", cfg.Redis.Enabled,
		"categories", len(cfg.Tickets.Categories))

	jobs.Start()
	defer func() {
		if err := jobs.Stop(); err != nil {
			log.Warnw("failed to stop scheduler", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gateway.Run(gctx, cfg.Discord.ActivityMsg)
	})
	if !noStatus {
		status := newStatusRouter(cfg, gdb, ticketRepo, gateway.Latency)
		g.Go(func() error {
			return status.Run(gctx, cfg.Server.GetStatusAddr())
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorw("bot stopped with error", "error", err)
		return err
	}
	log.Infow("bot exited gracefully")
	return nil
}

// newAPIStore picks the game API response cache: redis when enabled,
// otherwise an in-process store.
func newAPIStore(cfg *config.Config, log logger.Interface) (cache.Store, func(), error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryStore(cfg.API.CacheCapacity), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis cache connected", "addr", cfg.Redis.GetAddr())

	return cache.NewRedisStore(client, apiCachePrefix), func() { client.Close() }, nil
}

func guildInfo(session *discordgo.Session) func(string) (string, int) {
	return func(guildID string) (string, int) {
		g, err := session.State.Guild(guildID)
		if err != nil {
			return "", 0
		}
		return g.Name, g.MemberCount
	}
}

func newStatusRouter(cfg *config.Config, gdb *gorm.DB, ticketRepo ticket.Repository, latency func() time.Duration) *httpRouter.Router {
	log := logger.WithComponent("http")
	health := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}, latency, log)
	stats := tickethandlers.NewTicketHandler(ticketUsecases.NewGetTicketStatsUseCase(ticketRepo, log), log)
	return httpRouter.NewRouter(health, stats, log, cfg.Server.IsDebug())
}
