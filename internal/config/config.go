package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string `env:"PORT" env-default:"8080"`
	GinMode string `env:"GIN_MODE" env-default:"debug"`

	ChargebackCSV   string `env:"CHARGEBACK_CSV" env-default:"data/chargebacks.csv"`
	TransactionsCSV string `env:"TRANSACTIONS_CSV" env-default:"data/transactions_daily.csv"`

	// Engine knobs; the defaults match the documented product decisions.
	RateFallbackMultiplier int     `env:"RATE_FALLBACK_MULTIPLIER" env-default:"37"`
	TrendSentinelPct       float64 `env:"TREND_SENTINEL_PCT" env-default:"100"`
	TrendWindowDays        int     `env:"TREND_WINDOW_DAYS" env-default:"30"`
	TopMerchantsLimit      int     `env:"TOP_MERCHANTS_LIMIT" env-default:"10"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
