package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the tracker's environment configuration.
type Config struct {
	Strict   bool `env:"TRACKER_STRICT" envDefault:"true"`
	SeedDemo bool `env:"TRACKER_SEED_DEMO" envDefault:"false"`

	// DBPath enables the SQLite storage collaborator. Empty keeps everything in memory.
	DBPath     string `env:"TRACKER_DB_PATH"`
	DBLogLevel string `env:"TRACKER_DB_LOG_LEVEL" envDefault:"silent"`

	JWTSecret   string        `env:"TRACKER_JWT_SECRET" envDefault:"development-insecure-secret-change-me"`
	JWTIssuer   string        `env:"TRACKER_JWT_ISSUER" envDefault:"task-tracker"`
	JWTAudience string        `env:"TRACKER_JWT_AUDIENCE" envDefault:"task-tracker-cli"`
	SessionTTL  time.Duration `env:"TRACKER_SESSION_TTL" envDefault:"24h"`

	ExportDir string `env:"TRACKER_EXPORT_DIR" envDefault:"."`
}

var logLevels = []string{"silent", "error", "warn", "info"}

// Load reads Config from the environment and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values env.Parse accepts but the tracker cannot use.
func (c Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("TRACKER_SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("TRACKER_JWT_SECRET must not be empty")
	}
	level := strings.ToLower(c.DBLogLevel)
	for _, l := range logLevels {
		if l == level {
			return nil
		}
	}
	return fmt.Errorf("TRACKER_DB_LOG_LEVEL must be one of %s, got %q", strings.Join(logLevels, "|"), c.DBLogLevel)
}
