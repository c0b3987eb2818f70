package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/corporatewarfare/cwbot/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Discord  sharedConfig.DiscordConfig  `mapstructure:"discord"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	API      sharedConfig.APIConfig      `mapstructure:"api"`
	Tickets  sharedConfig.TicketConfig   `mapstructure:"tickets"`
	Welcome  sharedConfig.WelcomeConfig  `mapstructure:"welcome"`
	Cooldown sharedConfig.CooldownConfig `mapstructure:"cooldown"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configPath when given) and overlays
// CWBOT_* environment variables. A missing config file is not an error: every
// key has a default and the token usually comes from the environment.
func Load(env string, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("CWBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the last loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.status_host", "127.0.0.1")
	v.SetDefault("server.status_port", 8081)

	// Discord defaults
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.application_id", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("discord.footer_text", "Corporate Warfare")
	v.SetDefault("discord.activity", "Corporate Warfare")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/bot.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "cwbot")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Game API defaults
	v.SetDefault("api.base_url", "https://corporate-warfare.com/api")
	v.SetDefault("api.site_url", "https://corporate-warfare.com")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.requests_per_sec", 5)
	v.SetDefault("api.burst", 10)
	v.SetDefault("api.cache_capacity", 500)
	v.SetDefault("api.ttl.profile", "60s")
	v.SetDefault("api.ttl.corporation", "60s")
	v.SetDefault("api.ttl.leaderboard", "30s")
	v.SetDefault("api.ttl.market", "30s")
	v.SetDefault("api.ttl.game_time", "10s")

	// Ticket defaults
	v.SetDefault("tickets.parent_category_id", "")
	v.SetDefault("tickets.staff_role_id", "")
	v.SetDefault("tickets.channel_prefix", "ticket-")
	v.SetDefault("tickets.delete_delay", "5s")
	v.SetDefault("tickets.selector_lifetime", "60s")
	v.SetDefault("tickets.categories", []map[string]string{
		{"id": "support", "label": "General Support", "emoji": "🎫", "description": "Get help with general questions"},
		{"id": "bug", "label": "Bug Report", "emoji": "🐛", "description": "Report a bug or issue"},
		{"id": "suggestion", "label": "Suggestion", "emoji": "💡", "description": "Share an idea or suggestion"},
		{"id": "other", "label": "Other", "emoji": "📝", "description": "Something else"},
	})

	// Welcome defaults
	v.SetDefault("welcome.channel_id", "")
	v.SetDefault("welcome.rules_channel_id", "")
	v.SetDefault("welcome.unverified_role_id", "")
	v.SetDefault("welcome.member_role_id", "")
	v.SetDefault("welcome.verify_emoji", "✅")
	v.SetDefault("welcome.retention_hours", 24)

	// Cooldown defaults
	v.SetDefault("cooldown.command", "3s")
	v.SetDefault("cooldown.component", "1s")
	v.SetDefault("cooldown.sweep_interval", "60s")
}
