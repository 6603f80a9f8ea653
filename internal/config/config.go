// Package config handles configuration loading for the property analyser.
// It supports YAML config files with environment variable overrides. The
// regulatory tables (BSD tiers, ABSD rates, LTV limits) are configuration
// data, not code: the defaults are a point-in-time 2024 schedule and can be
// replaced wholesale from a config file when rates change.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Rates   RatesConfig   `mapstructure:"rates"   yaml:"rates"`
	Duties  DutiesConfig  `mapstructure:"duties"  yaml:"duties"`
	Rating  RatingConfig  `mapstructure:"rating"  yaml:"rating"`
	Lease   LeaseConfig   `mapstructure:"lease"   yaml:"lease"`
	Market  MarketConfig  `mapstructure:"market"  yaml:"market"`
	Scraper ScraperConfig `mapstructure:"scraper" yaml:"scraper"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// RatesConfig holds financing and fee assumptions.
type RatesConfig struct {
	InterestRate       float64 `mapstructure:"interest_rate"        yaml:"interest_rate"`        // annual, decimal
	LoanTenureYears    int     `mapstructure:"loan_tenure_years"    yaml:"loan_tenure_years"`
	LegalFees          float64 `mapstructure:"legal_fees"           yaml:"legal_fees"`
	AgentCommissionPct float64 `mapstructure:"agent_commission_pct" yaml:"agent_commission_pct"` // of price
	PropertyTaxRate    float64 `mapstructure:"property_tax_rate"    yaml:"property_tax_rate"`    // annual, of price
	TDSRLimitPct       float64 `mapstructure:"tdsr_limit_pct"       yaml:"tdsr_limit_pct"`
}

// TierConfig is one BSD tier in config form. Upper == 0 marks the
// open-ended top tier.
type TierConfig struct {
	Lower       float64 `mapstructure:"lower"       yaml:"lower"`
	Upper       float64 `mapstructure:"upper"       yaml:"upper"`
	Rate        float64 `mapstructure:"rate"        yaml:"rate"`
	Description string  `mapstructure:"description" yaml:"description"`
}

// RateConfig is a flat rate with a display description.
type RateConfig struct {
	Rate        float64 `mapstructure:"rate"        yaml:"rate"`
	Description string  `mapstructure:"description" yaml:"description"`
}

// DutiesConfig holds the regulatory rate tables. Empty tables fall back to
// the built-in 2024 defaults.
type DutiesConfig struct {
	BSDTiers  []TierConfig          `mapstructure:"bsd_tiers"  yaml:"bsd_tiers"`
	ABSDRates map[string]RateConfig `mapstructure:"absd_rates" yaml:"absd_rates"`
	LTVLimits map[string]RateConfig `mapstructure:"ltv_limits" yaml:"ltv_limits"`
	Grants    map[string]float64    `mapstructure:"grants"     yaml:"grants"`
}

// RatingConfig holds the deal-rating band thresholds (percent vs benchmark).
type RatingConfig struct {
	GoodBelowPct float64 `mapstructure:"good_below_pct" yaml:"good_below_pct"`
	FairBelowPct float64 `mapstructure:"fair_below_pct" yaml:"fair_below_pct"`
}

// LeaseConfig holds the lease-decay advisory thresholds in years.
type LeaseConfig struct {
	DecayYears  int `mapstructure:"decay_years"  yaml:"decay_years"`
	NoticeYears int `mapstructure:"notice_years" yaml:"notice_years"`
}

// MarketConfig holds market-data source settings.
type MarketConfig struct {
	URAAPIKey     string   `mapstructure:"ura_api_key"     yaml:"ura_api_key"`
	URABaseURL    string   `mapstructure:"ura_base_url"    yaml:"ura_base_url"`
	Months        int      `mapstructure:"months"          yaml:"months"`          // transaction lookback
	CacheTTLHours int      `mapstructure:"cache_ttl_hours" yaml:"cache_ttl_hours"`
	CacheFile     string   `mapstructure:"cache_file"      yaml:"cache_file"`
	NewsFeeds     []string `mapstructure:"news_feeds"      yaml:"news_feeds"`
}

// ScraperConfig holds listing scraper settings.
type ScraperConfig struct {
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.sgprop/config.yaml (home directory)
//  3. /etc/sgprop/config.yaml (system)
//
// Environment variables override config file values.
// Format: SGPROP_<SECTION>_<KEY>, e.g., SGPROP_MARKET_URA_API_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".sgprop"))
	v.AddConfigPath("/etc/sgprop")

	v.SetEnvPrefix("SGPROP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is fine, fall back to defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.fillDutyDefaults()
	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("SGPROP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.fillDutyDefaults()
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Financing defaults
	v.SetDefault("rates.interest_rate", 0.035)
	v.SetDefault("rates.loan_tenure_years", 25)
	v.SetDefault("rates.legal_fees", 3000)
	v.SetDefault("rates.agent_commission_pct", 0.01)
	v.SetDefault("rates.property_tax_rate", 0.0004)
	v.SetDefault("rates.tdsr_limit_pct", 55.0)

	// Deal-rating bands (percent vs market benchmark)
	v.SetDefault("rating.good_below_pct", -15.0)
	v.SetDefault("rating.fair_below_pct", 10.0)

	// Lease-decay thresholds
	v.SetDefault("lease.decay_years", 60)
	v.SetDefault("lease.notice_years", 80)

	// Market data defaults
	v.SetDefault("market.ura_base_url", "https://www.ura.gov.sg/uraDataService")
	v.SetDefault("market.months", 6)
	v.SetDefault("market.cache_ttl_hours", 24)
	v.SetDefault("market.cache_file", filepath.Join(homeDir(), ".sgprop", "transactions.json"))
	v.SetDefault("market.news_feeds", []string{
		"https://www.edgeprop.sg/rss.xml",
	})

	// Scraper defaults
	v.SetDefault("scraper.timeout_sec", 30)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// fillDutyDefaults replaces empty regulatory tables with the built-in 2024
// schedule. Tables given in the config file are taken as-is.
func (c *Config) fillDutyDefaults() {
	if len(c.Duties.BSDTiers) == 0 {
		c.Duties.BSDTiers = DefaultBSDTiers()
	}
	if len(c.Duties.ABSDRates) == 0 {
		c.Duties.ABSDRates = DefaultABSDRates()
	}
	if len(c.Duties.LTVLimits) == 0 {
		c.Duties.LTVLimits = DefaultLTVLimits()
	}
	if len(c.Duties.Grants) == 0 {
		c.Duties.Grants = DefaultGrants()
	}
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("SGPROP_MARKET_URA_API_KEY"); key != "" {
		cfg.Market.URAAPIKey = key
	}
	// Legacy variable name kept for compatibility with existing setups.
	if key := os.Getenv("URA_API_KEY"); key != "" && cfg.Market.URAAPIKey == "" {
		cfg.Market.URAAPIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
