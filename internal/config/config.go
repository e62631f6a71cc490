// Package config loads the shell configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"oiesnake/internal/snake"
)

// Config holds the settings shared by the goose and snake binaries.
type Config struct {
	Port      string        `env:"PORT"`
	BaseURL   string        `env:"BASE_URL"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	Seed      uint64        `env:"GAME_SEED"`
	SnakeTick time.Duration `env:"SNAKE_TICK" envDefault:"200ms"`
	SnakeIdle time.Duration `env:"SNAKE_IDLE" envDefault:"30s"`
	SnakeCols int           `env:"SNAKE_COLS" envDefault:"10"`
	SnakeRows int           `env:"SNAKE_ROWS" envDefault:"15"`
}

// Load parses the environment. defaultPort is used when PORT is unset.
func Load(defaultPort string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.SnakeTick <= 0 {
		return Config{}, fmt.Errorf("SNAKE_TICK must be positive, got %s", cfg.SnakeTick)
	}
	if cfg.SnakeIdle < 0 {
		return Config{}, fmt.Errorf("SNAKE_IDLE must not be negative, got %s", cfg.SnakeIdle)
	}
	if cfg.SnakeCols < snake.MinCols || cfg.SnakeRows < snake.MinRows {
		return Config{}, fmt.Errorf("snake grid %dx%d is too small", cfg.SnakeCols, cfg.SnakeRows)
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}
