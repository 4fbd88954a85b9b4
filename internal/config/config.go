package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration
type Config struct {
	Environment    string              `koanf:"environment"`
	LogLevel       string              `koanf:"log_level"`
	Storage        StorageConfig       `koanf:"storage"`
	Telegram       TelegramConfig      `koanf:"telegram"`
	AllowedChatIDs []int64             `koanf:"allowed_chat_ids"`
	Nudge          NudgeConfig         `koanf:"nudge"`
	Enrichment     EnrichmentConfig    `koanf:"enrichment"`
	Daily          DailyConfig         `koanf:"daily"`
	Notifications  NotificationsConfig `koanf:"notifications"`
}

// StorageConfig describes the app group container shared by the app and the widget
type StorageConfig struct {
	Dir        string         `koanf:"dir"`
	QuotesFile string         `koanf:"quotes_file"`
	Driver     string         `koanf:"driver"` // "sqlite" or "postgres"
	DefaultsDB string         `koanf:"defaults_db"`
	ReloadFile string         `koanf:"reload_file"`
	Postgres   PostgresConfig `koanf:"postgres"`
}

// PostgresConfig holds database connection configuration for the postgres driver
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	SSLMode  string `koanf:"sslmode"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	Token       string `koanf:"token"`
	OwnerChatID int64  `koanf:"owner_chat_id"`
	AutoLeave   bool   `koanf:"auto_leave"`
}

// NudgeConfig holds the evening reminder settings
type NudgeConfig struct {
	Hour   int    `koanf:"hour"`
	Minute int    `koanf:"minute"`
	Title  string `koanf:"title"`
}

// EnrichmentConfig holds the remote enrichment service settings
type EnrichmentConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// DailyConfig holds the derived state refresher settings
type DailyConfig struct {
	RefreshInterval time.Duration `koanf:"refresh_interval"` // e.g., "30m"
}

// NotificationsConfig holds the notification dispatcher settings
type NotificationsConfig struct {
	DispatchInterval time.Duration `koanf:"dispatch_interval"`
}

// DSN returns the PostgreSQL connection string
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}

// QuotesPath returns the location of the persisted quote collection
func (c *StorageConfig) QuotesPath() string {
	return filepath.Join(c.Dir, c.QuotesFile)
}

// DefaultsPath returns the location of the SQLite key/value database
func (c *StorageConfig) DefaultsPath() string {
	return filepath.Join(c.Dir, c.DefaultsDB)
}

// ReloadPath returns the location of the widget reload signal file
func (c *StorageConfig) ReloadPath() string {
	return filepath.Join(c.Dir, c.ReloadFile)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load loads configuration from environment variables and config files
func Load(environment string) (*Config, error) {
	k := koanf.New(".")
	// Load defaults first (lowest priority)
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// Config file is optional
	configFile := fmt.Sprintf("config/%s.yaml", environment)
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		slog.Debug("could not load config file", "file", configFile, "error", err)
	}

	// Environment variables with QUOTIE_ prefix override config file values
	if err := k.Load(env.ProviderWithValue("QUOTIE_", "__", func(key string, value string) (string, interface{}) {
		finalKey := strings.TrimPrefix(strings.ToLower(key), "quotie_")

		switch k.Get(finalKey).(type) {
		case []interface{}, []string, []int64:
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return finalKey, parts
		}

		return finalKey, value
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Environment = environment

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Nudge.Hour < 0 || c.Nudge.Hour > 23 {
		return fmt.Errorf("nudge.hour must be within 0..23, got %d", c.Nudge.Hour)
	}
	if c.Nudge.Minute < 0 || c.Nudge.Minute > 59 {
		return fmt.Errorf("nudge.minute must be within 0..59, got %d", c.Nudge.Minute)
	}
	switch c.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	return nil
}

// defaultConfig returns the default configuration values
func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		Storage: StorageConfig{
			Dir:        "./data/group.quotie",
			QuotesFile: "quotes.json",
			Driver:     "sqlite",
			DefaultsDB: "defaults.db",
			ReloadFile: "widget.reload",
			Postgres: PostgresConfig{
				Port:    5432,
				SSLMode: "disable",
			},
		},
		Nudge: NudgeConfig{
			Hour:   18,
			Minute: 0,
			Title:  "Memmi",
		},
		Enrichment: EnrichmentConfig{
			Timeout: 5 * time.Second,
		},
		Daily: DailyConfig{
			RefreshInterval: 30 * time.Minute,
		},
		Notifications: NotificationsConfig{
			DispatchInterval: time.Minute,
		},
	}
}
