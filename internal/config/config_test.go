package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	// Arrange - Clear all environment variables
	clearEnvVars(t)

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.LogOutput != DefaultLogOutput {
		t.Errorf("LogOutput = %s, want %s", cfg.LogOutput, DefaultLogOutput)
	}
	if cfg.ReportDir != DefaultReportDir {
		t.Errorf("ReportDir = %s, want %s", cfg.ReportDir, DefaultReportDir)
	}
	if cfg.ReportWindowDays != DefaultReportWindowDays {
		t.Errorf("ReportWindowDays = %d, want %d", cfg.ReportWindowDays, DefaultReportWindowDays)
	}
	if cfg.MetricsTextfile != "" {
		t.Errorf("MetricsTextfile = %s, want empty string", cfg.MetricsTextfile)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name: "custom log level",
			envVars: map[string]string{
				EnvLogLevel: "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.LogLevel != "debug" {
					t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
				}
			},
		},
		{
			name: "log level is case-insensitive",
			envVars: map[string]string{
				EnvLogLevel: "INFO",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.LogLevel != "info" {
					t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
				}
			},
		},
		{
			name: "log to file",
			envVars: map[string]string{
				EnvLogOutput: "/var/log/agrostock.log",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.LogOutput != "/var/log/agrostock.log" {
					t.Errorf("LogOutput = %s, want /var/log/agrostock.log", cfg.LogOutput)
				}
			},
		},
		{
			name: "all custom values",
			envVars: map[string]string{
				EnvLogLevel:         "error",
				EnvLogOutput:        "stdout",
				EnvReportDir:        "/tmp/reports",
				EnvReportWindowDays: "7",
				EnvMetricsTextfile:  "/tmp/agrostock.prom",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.LogLevel != "error" {
					t.Errorf("LogLevel = %s, want error", cfg.LogLevel)
				}
				if cfg.LogOutput != "stdout" {
					t.Errorf("LogOutput = %s, want stdout", cfg.LogOutput)
				}
				if cfg.ReportDir != "/tmp/reports" {
					t.Errorf("ReportDir = %s, want /tmp/reports", cfg.ReportDir)
				}
				if cfg.ReportWindowDays != 7 {
					t.Errorf("ReportWindowDays = %d, want 7", cfg.ReportWindowDays)
				}
				if cfg.MetricsTextfile != "/tmp/agrostock.prom" {
					t.Errorf("MetricsTextfile = %s, want /tmp/agrostock.prom", cfg.MetricsTextfile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			clearEnvVars(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			// Act
			cfg, err := Load()

			// Assert
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{
			name: "invalid log level",
			envVars: map[string]string{
				EnvLogLevel: "verbose",
			},
			wantErr: ErrInvalidLogLevel,
		},
		{
			name: "report window - zero",
			envVars: map[string]string{
				EnvReportWindowDays: "0",
			},
			wantErr: ErrInvalidReportWindow,
		},
		{
			name: "report window - negative",
			envVars: map[string]string{
				EnvReportWindowDays: "-30",
			},
			wantErr: ErrInvalidReportWindow,
		},
		{
			name: "report window - too large",
			envVars: map[string]string{
				EnvReportWindowDays: "3651",
			},
			wantErr: ErrInvalidReportWindow,
		},
		{
			name: "report dir - blank",
			envVars: map[string]string{
				EnvReportDir: "   ",
			},
			wantErr: ErrInvalidReportDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			clearEnvVars(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			// Act
			cfg, err := Load()

			// Assert
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if cfg != nil {
				t.Errorf("Load() expected nil config on error, got %+v", cfg)
			}
		})
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	t.Setenv(EnvReportWindowDays, "thirty")

	// Act
	cfg, err := Load()

	// Assert
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if cfg != nil {
		t.Errorf("Load() expected nil config on error, got %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			LogLevel:         "info",
			LogOutput:        "stderr",
			ReportDir:        ".",
			ReportWindowDays: 30,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid config", func(*Config) {}, nil},
		{"max window", func(c *Config) { c.ReportWindowDays = MaxReportWindowDays }, nil},
		{"one day window", func(c *Config) { c.ReportWindowDays = 1 }, nil},
		{"empty log level", func(c *Config) { c.LogLevel = "" }, ErrInvalidLogLevel},
		{"empty log output", func(c *Config) { c.LogOutput = "" }, ErrInvalidLogOutput},
		{"empty report dir", func(c *Config) { c.ReportDir = "" }, ErrInvalidReportDir},
		{"window above max", func(c *Config) { c.ReportWindowDays = MaxReportWindowDays + 1 }, ErrInvalidReportWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cfg := valid()
			tt.mutate(&cfg)

			// Act
			err := cfg.Validate()

			// Assert
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ReportPaths(t *testing.T) {
	cfg := &Config{ReportDir: "/data/reports"}

	if got, want := cfg.RecentReportPath(), filepath.Join("/data/reports", RecentReportFileName); got != want {
		t.Errorf("RecentReportPath() = %s, want %s", got, want)
	}
	if got, want := cfg.FullReportPath(), filepath.Join("/data/reports", FullReportFileName); got != want {
		t.Errorf("FullReportPath() = %s, want %s", got, want)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		EnvLogLevel,
		EnvLogOutput,
		EnvReportDir,
		EnvReportWindowDays,
		EnvMetricsTextfile,
	}
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}
