// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct and 'go-playground/validator' to reject inconsistent settings before
any dependency is dialed.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, cache, tokens) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Pet Store API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"        validate:"required,numeric"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development" validate:"oneof=development staging production"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Storage backend for pets, orders and users
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory" validate:"oneof=memory postgres"`

	// Relational Database (PostgreSQL), required by the postgres driver
	DatabaseURL string `env:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the pet cache.
	RedisURL    string        `env:"REDIS_URL"`
	PetCacheTTL time.Duration `env:"PET_CACHE_TTL" envDefault:"5m" validate:"gt=0"`

	// Session token signing
	SessionSecret string        `env:"SESSION_SECRET,required" validate:"min=32"`
	SessionTTL    time.Duration `env:"SESSION_TTL"   envDefault:"15m"         validate:"gt=0"`
	TokenIssuer   string        `env:"TOKEN_ISSUER"  envDefault:"petstore.api" validate:"required"`

	// Public base URL of uploaded pet images
	StaticBaseURL string `env:"STATIC_BASE_URL" envDefault:"http://localhost:8080/static" validate:"url"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// 1. Map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// 2. Cross-field and range validation
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesPostgres reports whether the relational store is selected.
func (c *Config) UsesPostgres() bool {
	return c.StoreDriver == DriverPostgres
}

// UsesRedis reports whether the pet cache is enabled.
func (c *Config) UsesRedis() bool {
	return c.RedisURL != ""
}

// OriginAllowed reports whether a browser origin may call the API.
// Every origin is allowed in development.
func (c *Config) OriginAllowed(origin string) bool {
	return c.IsDevelopment() || slices.Contains(c.AllowedOrigins, origin)
}
