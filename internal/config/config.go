package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string        `env:"SERVER_PORT" envDefault:"8080"`
	MySQLDSN      string        `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/taskboard?charset=utf8mb4&parseTime=True&loc=Local"`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"change-me"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"30m"`
	SwaggerHost   string        `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
