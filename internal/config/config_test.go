package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithAllowedChatIDs(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected []int64
		wantErr  bool
	}{
		{
			name:     "no env var set",
			envValue: "",
			expected: nil,
			wantErr:  false,
		},
		{
			name:     "single chat ID",
			envValue: "123456789",
			expected: []int64{123456789},
			wantErr:  false,
		},
		{
			name:     "multiple chat IDs",
			envValue: "123456789,-987654321,555555555",
			expected: []int64{123456789, -987654321, 555555555},
			wantErr:  false,
		},
		{
			name:     "invalid chat ID",
			envValue: "not-a-number",
			expected: nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("QUOTIE_ALLOWED_CHAT_IDS", tt.envValue)
			}

			cfg, err := Load("test")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, cfg.AllowedChatIDs)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "quotes.json", cfg.Storage.QuotesFile)
	assert.Equal(t, 18, cfg.Nudge.Hour)
	assert.Equal(t, 0, cfg.Nudge.Minute)
	assert.Equal(t, "Memmi", cfg.Nudge.Title)
	assert.Equal(t, 5432, cfg.Storage.Postgres.Port)
	assert.Equal(t, 30*time.Minute, cfg.Daily.RefreshInterval)
	assert.NotZero(t, cfg.Notifications.DispatchInterval)
	assert.Empty(t, cfg.Enrichment.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUOTIE_STORAGE__DIR", "/tmp/group.test")
	t.Setenv("QUOTIE_NUDGE__HOUR", "20")
	t.Setenv("QUOTIE_TELEGRAM__OWNER_CHAT_ID", "4242")
	t.Setenv("QUOTIE_ENRICHMENT__TIMEOUT", "2s")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/group.test", cfg.Storage.Dir)
	assert.Equal(t, "/tmp/group.test/quotes.json", cfg.Storage.QuotesPath())
	assert.Equal(t, "/tmp/group.test/defaults.db", cfg.Storage.DefaultsPath())
	assert.Equal(t, "/tmp/group.test/widget.reload", cfg.Storage.ReloadPath())
	assert.Equal(t, 20, cfg.Nudge.Hour)
	assert.Equal(t, int64(4242), cfg.Telegram.OwnerChatID)
	assert.Equal(t, 2*time.Second, cfg.Enrichment.Timeout)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "hour out of range", key: "QUOTIE_NUDGE__HOUR", val: "24"},
		{name: "minute out of range", key: "QUOTIE_NUDGE__MINUTE", val: "60"},
		{name: "unknown driver", key: "QUOTIE_STORAGE__DRIVER", val: "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("test")
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "quotie",
		Password: "",
		Database: "quotie",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=quotie password= dbname=quotie sslmode=disable", cfg.DSN())
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
