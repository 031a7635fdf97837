package config

import (
	"time"

	"golang-stock-watchlist/pkg/config"
)

// Monitor holds the evaluation-cycle settings.
type Monitor struct {
	// Schedule is a standard cron expression driving the scan cycle.
	Schedule             string        `mapstructure:"schedule"`
	MaxConcurrentWatches int           `mapstructure:"max_concurrent_watches"`
	PriceCacheTTL        time.Duration `mapstructure:"price_cache_ttl"`
}

// YahooFinance holds the configuration for the Yahoo Finance quote API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Screener holds the configuration for the screener.in fallback source.
type Screener struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// PriceSource selects which price provider the monitor uses.
type PriceSource struct {
	Provider string `mapstructure:"provider"` // "yahoo_finance" or "screener"
}

// Config holds the full configuration for the monitor service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	Telegram     config.Telegram `mapstructure:"telegram"`
	Monitor      Monitor         `mapstructure:"monitor"`
	PriceSource  PriceSource     `mapstructure:"price_source"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Screener     Screener        `mapstructure:"screener"`
}

// Load loads the monitor configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
