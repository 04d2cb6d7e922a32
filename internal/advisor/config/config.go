package config

import (
	"time"

	"invest-advisor/pkg/config"
)

// Telegram holds configuration for the Telegram bot front-end.
type Telegram struct {
	BotToken      string `mapstructure:"bot_token"`
	UpdateTimeout int    `mapstructure:"update_timeout"`
}

// NewsAPI holds the configuration for the NewsAPI provider.
type NewsAPI struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// GoogleNewsRSS holds the configuration for the RSS fallback provider.
type GoogleNewsRSS struct {
	Enabled     bool   `mapstructure:"enabled"`
	BaseURL     string `mapstructure:"base_url"`
	MaxArticles int    `mapstructure:"max_articles"`
}

// YahooFinance holds the configuration for the price provider.
type YahooFinance struct {
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// Advisor holds pipeline tuning that is allowed to vary per deployment.
// Model hyperparameters and decision thresholds are fixed constants in
// the forecast and recommend packages, not configuration.
type Advisor struct {
	BenchmarkSymbol string        `mapstructure:"benchmark_symbol"`
	ForecastDays    int           `mapstructure:"forecast_days"`
	RiskPeriodDays  int           `mapstructure:"risk_period_days"`
	HistoryDays     int           `mapstructure:"history_days"`
	ModelCacheTTL   time.Duration `mapstructure:"model_cache_ttl"`
}

// Config holds the full configuration for the advisor service.
type Config struct {
	App           config.App      `mapstructure:"app"`
	Logger        config.Logger   `mapstructure:"logger"`
	Database      config.Database `mapstructure:"database"`
	Redis         config.Redis    `mapstructure:"redis"`
	HTTP          config.HTTP     `mapstructure:"http"`
	Telegram      Telegram        `mapstructure:"telegram"`
	NewsAPI       NewsAPI         `mapstructure:"news_api"`
	GoogleNewsRSS GoogleNewsRSS   `mapstructure:"google_news_rss"`
	YahooFinance  YahooFinance    `mapstructure:"yahoo_finance"`
	Advisor       Advisor         `mapstructure:"advisor"`
}

// Load loads the advisor configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Advisor.BenchmarkSymbol == "" {
		c.Advisor.BenchmarkSymbol = "^GSPC"
	}
	if c.Advisor.ForecastDays == 0 {
		c.Advisor.ForecastDays = 365
	}
	if c.Advisor.RiskPeriodDays == 0 {
		c.Advisor.RiskPeriodDays = 30
	}
	if c.Advisor.HistoryDays == 0 {
		c.Advisor.HistoryDays = 30
	}
	if c.Advisor.ModelCacheTTL == 0 {
		c.Advisor.ModelCacheTTL = 15 * time.Minute
	}
	if c.YahooFinance.CacheTTL == 0 {
		c.YahooFinance.CacheTTL = 5 * time.Minute
	}
	if c.GoogleNewsRSS.BaseURL == "" {
		c.GoogleNewsRSS.BaseURL = "https://news.google.com/rss"
	}
	if c.GoogleNewsRSS.MaxArticles == 0 {
		c.GoogleNewsRSS.MaxArticles = 10
	}
	if c.Telegram.UpdateTimeout == 0 {
		c.Telegram.UpdateTimeout = 30
	}
}
