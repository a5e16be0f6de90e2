// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

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

// MinSessionSecretLength is the minimum required length for the
// session secret.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DataDir       string `env:"FCMS_DATA_DIR" envDefault:"./data"`
	PublicDir     string `env:"FCMS_PUBLIC_DIR" envDefault:"./public"`
	ServerHost    string `env:"FCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FCMS_SERVER_PORT" envDefault:"3000"`
	Env           string `env:"FCMS_ENV" envDefault:"development"`
	LogLevel      string `env:"FCMS_LOG_LEVEL" envDefault:"info"`
	SessionSecret string `env:"FCMS_SESSION_SECRET,required"`

	// Admin account seed. Exactly one privileged principal; supply
	// either a pre-hashed argon2id secret (preferred) or, for
	// development, a plain password that is hashed at startup.
	AdminUsername     string `env:"FCMS_ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"FCMS_ADMIN_PASSWORD_HASH"`
	AdminPassword     string `env:"FCMS_ADMIN_PASSWORD"`

	// AuditRetentionDays bounds audit log growth. 0 keeps entries
	// forever.
	AuditRetentionDays int `env:"FCMS_AUDIT_RETENTION_DAYS" envDefault:"0"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FCMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("FCMS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FCMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("either FCMS_ADMIN_PASSWORD_HASH or FCMS_ADMIN_PASSWORD must be set")
	}
	if cfg.AuditRetentionDays < 0 {
		return nil, fmt.Errorf("FCMS_AUDIT_RETENTION_DAYS must not be negative, got %d", cfg.AuditRetentionDays)
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
