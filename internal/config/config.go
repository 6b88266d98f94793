// Package config loads the server configuration from environment variables.
//
// We use envconfig instead of scattering os.Getenv calls through main:
// every setting is declared once on the Config struct, with its env var
// name, default, and type conversion handled by the library.
//
// Environment variables (all prefixed SCHEDULE_):
//
//	SCHEDULE_PORT                   — HTTP port (default 8080)
//	SCHEDULE_DB_PATH                — SQLite file path; empty = demo mode, no persistence
//	SCHEDULE_JWT_SECRET             — HMAC secret for session tokens (>= 16 chars)
//	SCHEDULE_DISCORD_CLIENT_ID      — OAuth app client ID
//	SCHEDULE_DISCORD_CLIENT_SECRET  — OAuth app client secret
//	SCHEDULE_DISCORD_CALLBACK_URL   — OAuth callback (default derived from port)
//	SCHEDULE_ADMIN_DISCORD_ID       — the single allow-listed Discord account id
//	SCHEDULE_LOG_LEVEL              — debug|info|warn|error (default debug)
package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the server.
type Config struct {
	Port                 int    `envconfig:"PORT" default:"8080"`
	DBPath               string `envconfig:"DB_PATH"`
	JWTSecret            string `envconfig:"JWT_SECRET"`
	DiscordClientID      string `envconfig:"DISCORD_CLIENT_ID"`
	DiscordClientSecret  string `envconfig:"DISCORD_CLIENT_SECRET"`
	DiscordCallbackURL   string `envconfig:"DISCORD_CALLBACK_URL"`
	AdminDiscordID       string `envconfig:"ADMIN_DISCORD_ID"`
	LogLevel             string `envconfig:"LOG_LEVEL" default:"debug"`
}

// Load reads the SCHEDULE_-prefixed environment and fills in derived
// defaults. It does not validate auth settings — the server runs without
// them (read-only, auth routes unregistered), same as it runs without a
// database.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("schedule", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.DiscordCallbackURL == "" {
		cfg.DiscordCallbackURL = fmt.Sprintf("http://localhost:%d/auth/discord/callback", cfg.Port)
	}

	return cfg, nil
}

// DemoMode reports whether the server runs without a backing store.
// Absence of a store handle routes all reads to the deterministic demo
// dataset instead of branching on a boolean at every call site.
func (c Config) DemoMode() bool { return c.DBPath == "" }

// AuthEnabled reports whether the owner console can be reached at all.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.DiscordClientID != "" && c.DiscordClientSecret != "" && c.AdminDiscordID != ""
}

// SlogLevel maps the configured level string to a slog.Level.
// Unknown values fall back to debug rather than failing startup.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
