package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Mode       string `mapstructure:"mode"`
	StatusHost string `mapstructure:"status_host"`
	StatusPort int    `mapstructure:"status_port"`
}

func (s *ServerConfig) GetStatusAddr() string {
	return fmt.Sprintf("%s:%d", s.StatusHost, s.StatusPort)
}

func (s *ServerConfig) IsDebug() bool {
	return s.Mode == "debug"
}

type DiscordConfig struct {
	Token         string `mapstructure:"token"`
	ApplicationID string `mapstructure:"application_id"`
	// GuildID scopes slash command registration; empty registers globally.
	GuildID     string `mapstructure:"guild_id"`
	FooterText  string `mapstructure:"footer_text"`
	ActivityMsg string `mapstructure:"activity"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver specific data source name.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", d.Path)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CacheTTLConfig struct {
	Profile     time.Duration `mapstructure:"profile"`
	Corporation time.Duration `mapstructure:"corporation"`
	Leaderboard time.Duration `mapstructure:"leaderboard"`
	Market      time.Duration `mapstructure:"market"`
	GameTime    time.Duration `mapstructure:"game_time"`
}

type APIConfig struct {
	BaseURL        string         `mapstructure:"base_url"`
	SiteURL        string         `mapstructure:"site_url"`
	Timeout        time.Duration  `mapstructure:"timeout"`
	RequestsPerSec float64        `mapstructure:"requests_per_sec"`
	Burst          int            `mapstructure:"burst"`
	CacheCapacity  int            `mapstructure:"cache_capacity"`
	TTL            CacheTTLConfig `mapstructure:"ttl"`
}

type TicketCategory struct {
	ID          string `mapstructure:"id"`
	Label       string `mapstructure:"label"`
	Emoji       string `mapstructure:"emoji"`
	Description string `mapstructure:"description"`
}

type TicketConfig struct {
	ParentCategoryID string           `mapstructure:"parent_category_id"`
	StaffRoleID      string           `mapstructure:"staff_role_id"`
	ChannelPrefix    string           `mapstructure:"channel_prefix"`
	DeleteDelay      time.Duration    `mapstructure:"delete_delay"`
	SelectorLifetime time.Duration    `mapstructure:"selector_lifetime"`
	Categories       []TicketCategory `mapstructure:"categories"`
}

// Category returns the configured category with the given id, falling back to
// the first configured category.
func (t *TicketConfig) Category(id string) TicketCategory {
	for _, c := range t.Categories {
		if c.ID == id {
			return c
		}
	}
	if len(t.Categories) > 0 {
		return t.Categories[0]
	}
	return TicketCategory{ID: id, Label: id}
}

type WelcomeConfig struct {
	ChannelID        string `mapstructure:"channel_id"`
	RulesChannelID   string `mapstructure:"rules_channel_id"`
	UnverifiedRoleID string `mapstructure:"unverified_role_id"`
	MemberRoleID     string `mapstructure:"member_role_id"`
	VerifyEmoji      string `mapstructure:"verify_emoji"`
	RetentionHours   int    `mapstructure:"retention_hours"`
}

type CooldownConfig struct {
	Command       time.Duration `mapstructure:"command"`
	Component     time.Duration `mapstructure:"component"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}
