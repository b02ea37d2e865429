// Package config loads the settings of the pay tool.
//
// Settings come from an optional .env file, overridden by environment
// variables, and finally by command-line flags in package cmd.
package config

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/etnz/payments"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Output formats of the replayed accounts.
const (
	FormatCSV      = "csv"
	FormatJSONL    = "jsonl"
	FormatMarkdown = "markdown"
)

// Formats lists the supported output formats.
var Formats = []string{FormatCSV, FormatJSONL, FormatMarkdown}

// Config holds the settings of a replay.
type Config struct {
	LookbackCapacity int    `mapstructure:"PAYMENTS_LOOKBACK_CAPACITY"` // settlements remembered for disputes
	LogLevel         string `mapstructure:"PAYMENTS_LOG_LEVEL"`         // debug, info, warn or error
	ReportRejected   bool   `mapstructure:"PAYMENTS_REPORT_REJECTED"`   // log every rejected transaction
	Format           string `mapstructure:"PAYMENTS_FORMAT"`            // output format
}

// Load reads the configuration from the optional .env file in path and from
// the environment. The result is not validated: callers apply their own
// overrides first, then call Validate.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PAYMENTS_LOOKBACK_CAPACITY", payments.DefaultLookbackCapacity)
	v.SetDefault("PAYMENTS_LOG_LEVEL", "warn")
	v.SetDefault("PAYMENTS_REPORT_REJECTED", true)
	v.SetDefault("PAYMENTS_FORMAT", FormatCSV)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("warning, cannot read config file in %q, using environment only: %v", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	return c, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.LookbackCapacity <= 0 {
		return fmt.Errorf("lookback capacity must be positive, got %d", c.LookbackCapacity)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q, must be one of %s", c.Format, strings.Join(Formats, ", "))
	}
	return nil
}
