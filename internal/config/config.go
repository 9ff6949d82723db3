// Package config provides configuration management for the inventory console.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default configuration values.
const (
	DefaultLogLevel         = "warn"
	DefaultLogOutput        = "stderr"
	DefaultReportDir        = "."
	DefaultReportWindowDays = 30
	DefaultMetricsTextfile  = ""
	MaxReportWindowDays     = 3650
	RecentReportFileName    = "relatorio_30_dias.json"
	FullReportFileName      = "relatorio_completo.txt"
)

// Environment variable names.
const (
	EnvLogLevel         = "APP_LOG_LEVEL"
	EnvLogOutput        = "APP_LOG_OUTPUT"
	EnvReportDir        = "APP_REPORT_DIR"
	EnvReportWindowDays = "APP_REPORT_WINDOW_DAYS"
	EnvMetricsTextfile  = "APP_METRICS_TEXTFILE"
)

// Config holds the application configuration.
type Config struct {
	// Logging settings.
	LogLevel  string
	LogOutput string // "stderr", "stdout" or a file path.

	// Report settings.
	ReportDir        string
	ReportWindowDays int

	// MetricsTextfile is written on exit when set.
	MetricsTextfile string
}

// Validation errors.
var (
	ErrInvalidLogLevel     = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidLogOutput    = errors.New("log output cannot be empty")
	ErrInvalidReportDir    = errors.New("report directory cannot be empty")
	ErrInvalidReportWindow = fmt.Errorf("report window must be between 1 and %d days", MaxReportWindowDays)
)

// Load reads configuration from environment variables with defaults.
// Environment variables have priority over default values.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:         DefaultLogLevel,
		LogOutput:        DefaultLogOutput,
		ReportDir:        DefaultReportDir,
		ReportWindowDays: DefaultReportWindowDays,
		MetricsTextfile:  DefaultMetricsTextfile,
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration values from environment variables.
func (c *Config) loadFromEnv() error {
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = strings.ToLower(val)
	}

	if val := os.Getenv(EnvLogOutput); val != "" {
		c.LogOutput = val
	}

	if val := os.Getenv(EnvReportDir); val != "" {
		c.ReportDir = val
	}

	if val := os.Getenv(EnvReportWindowDays); val != "" {
		days, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvReportWindowDays, err)
		}
		c.ReportWindowDays = days
	}

	if val := os.Getenv(EnvMetricsTextfile); val != "" {
		c.MetricsTextfile = val
	}

	return nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return ErrInvalidLogLevel
	}

	if strings.TrimSpace(c.LogOutput) == "" {
		return ErrInvalidLogOutput
	}

	if strings.TrimSpace(c.ReportDir) == "" {
		return ErrInvalidReportDir
	}

	if c.ReportWindowDays < 1 || c.ReportWindowDays > MaxReportWindowDays {
		return ErrInvalidReportWindow
	}

	return nil
}

// RecentReportPath returns the path of the recent movements JSON report.
func (c *Config) RecentReportPath() string {
	return filepath.Join(c.ReportDir, RecentReportFileName)
}

// FullReportPath returns the path of the full text report.
func (c *Config) FullReportPath() string {
	return filepath.Join(c.ReportDir, FullReportFileName)
}
