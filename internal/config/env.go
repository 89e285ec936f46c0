package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override prepaid.yaml.
const (
	EnvAsAt        = "PREPAID_AS_AT"
	EnvStartPeriod = "PREPAID_START_PERIOD"
	EnvEndPeriod   = "PREPAID_END_PERIOD"
	EnvItemFilter  = "PREPAID_ITEM_FILTER"
	EnvMonthFilter = "PREPAID_MONTH_FILTER"
	EnvInput       = "PREPAID_INPUT"
	EnvOutputDir   = "PREPAID_OUTPUT_DIR"
	EnvLogLevel    = "PREPAID_LOG_LEVEL"
)

// LoadEnvFile loads variables from a .env file into the process environment.
// An empty path tries ./.env and ignores it if absent; an explicit path must exist.
// Variables already set in the environment are not overwritten.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with any PREPAID_* variables that are set.
func (c *Config) ApplyEnv() {
	c.ApplyLookup(os.LookupEnv)
}

// ApplyLookup is ApplyEnv with an injectable lookup function.
func (c *Config) ApplyLookup(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAsAt); ok {
		c.AsAt = v
	}
	if v, ok := lookup(EnvStartPeriod); ok {
		c.Period.Start = v
	}
	if v, ok := lookup(EnvEndPeriod); ok {
		c.Period.End = v
	}
	if v, ok := lookup(EnvItemFilter); ok {
		c.Filters.Items = SplitList(v)
	}
	if v, ok := lookup(EnvMonthFilter); ok {
		c.Filters.Months = SplitList(v)
	}
	if v, ok := lookup(EnvInput); ok && v != "" {
		c.Input = v
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
}
