package config

import (
	"time"

	"golang-stock-watchlist/pkg/config"
)

// SymbolSearch holds settings for the symbol autocomplete proxy.
type SymbolSearch struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxResults          int           `mapstructure:"max_results"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	SymbolSearch SymbolSearch    `mapstructure:"symbol_search"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
