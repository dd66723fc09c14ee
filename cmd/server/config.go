package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendBolt     Backend = "bolt"
	BackendMemory   Backend = "memory"
)

type Config struct {
	ListenAddr   string `env:"LISTEN_ADDR" envDefault:":8080"`
	DSN          string `env:"SKYLADDER_DB_DSN"`
	SaveSlotPath string `env:"SAVE_SLOT_PATH"`
	ContentPath  string `env:"CONTENT_PATH"`
	RNGSeed      uint64 `env:"RNG_SEED"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty    bool   `env:"LOG_PRETTY"`
	AllowOrigin  string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`

	// MigrationsDir overrides the embedded schema when set.
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	AutoMigrate   bool   `env:"AUTO_MIGRATE"`

	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.SaveSlotPath = strings.TrimSpace(cfg.SaveSlotPath)
	cfg.ContentPath = strings.TrimSpace(cfg.ContentPath)
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Backend picks the store: Postgres when a DSN is set, then a bbolt save
// slot, then process memory.
func (c Config) Backend() Backend {
	switch {
	case c.DSN != "":
		return BackendPostgres
	case c.SaveSlotPath != "":
		return BackendBolt
	default:
		return BackendMemory
	}
}
