// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSessionSecretLength is the minimum required length for the session
// secret (32 bytes, enough for AES-256 keying).
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"VEGAPLAY_DB_PATH" envDefault:"./data/vegaplay.db"`
	DataDir       string `env:"VEGAPLAY_DATA_DIR" envDefault:"./data"`
	SessionSecret string `env:"VEGAPLAY_SESSION_SECRET,required"`
	ServerHost    string `env:"VEGAPLAY_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"VEGAPLAY_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"VEGAPLAY_ENV" envDefault:"development"`
	LogLevel      string `env:"VEGAPLAY_LOG_LEVEL" envDefault:"info"`

	// Public site base URL, used for sitemap locations and email links.
	SiteURL string `env:"VEGAPLAY_SITE_URL" envDefault:"http://localhost:8080"`

	// SMTP configuration. All credentials are injected here; nothing is
	// hardcoded anywhere else. When SMTPHost is empty, outbound mail is
	// written to the log instead.
	SMTPHost     string `env:"VEGAPLAY_SMTP_HOST"`
	SMTPPort     int    `env:"VEGAPLAY_SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"VEGAPLAY_SMTP_USER"`
	SMTPPassword string `env:"VEGAPLAY_SMTP_PASSWORD"`
	MailFrom     string `env:"VEGAPLAY_MAIL_FROM" envDefault:"no-reply@vegaplay.example"`
	ContactInbox string `env:"VEGAPLAY_CONTACT_INBOX" envDefault:"hola@vegaplay.example"`

	// Optional Redis URL. When set, rate-limit counters are kept in Redis
	// so multiple instances share one view of traffic.
	RedisURL string `env:"VEGAPLAY_REDIS_URL"`

	// Seeding configuration
	DoSeed bool `env:"VEGAPLAY_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SMTPEnabled returns true if an SMTP relay is configured.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// UseRedisLimiter returns true if distributed rate limiting is configured.
func (c Config) UseRedisLimiter() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("VEGAPLAY_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("VEGAPLAY_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("VEGAPLAY_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
