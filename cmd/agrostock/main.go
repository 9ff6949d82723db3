// Package main is the entry point for the agricultural supply inventory console.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vyrodovalexey/agrostock/internal/config"
	"github.com/vyrodovalexey/agrostock/internal/console"
	"github.com/vyrodovalexey/agrostock/internal/metrics"
	"github.com/vyrodovalexey/agrostock/internal/report"
	"github.com/vyrodovalexey/agrostock/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use a basic logger for startup errors
		basicLogger, _ := zap.NewProduction()
		basicLogger.Error("failed to load configuration", zap.Error(err))
		return 1
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		basicLogger, _ := zap.NewProduction()
		basicLogger.Error("failed to initialize logger", zap.Error(err))
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration loaded",
		zap.String("log_level", cfg.LogLevel),
		zap.String("log_output", cfg.LogOutput),
		zap.String("report_dir", cfg.ReportDir),
		zap.Int("report_window_days", cfg.ReportWindowDays),
		zap.Bool("metrics_textfile_enabled", cfg.MetricsTextfile != ""),
	)

	if err := runConsole(context.Background(), cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("console stopped", zap.Error(err))
		return 1
	}

	logger.Info("inventory session ended")
	return 0
}

// runConsole wires the store, reports and metrics to a console session and
// blocks until the operator exits.
func runConsole(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	in io.Reader,
	out io.Writer,
) error {
	itemStore := store.NewMemoryStore()
	recorder := metrics.New()
	exporter := report.NewExporter(
		cfg.RecentReportPath(),
		cfg.FullReportPath(),
		cfg.ReportWindowDays,
		logger,
	)

	c := console.New(in, out, itemStore, exporter, logger, console.WithMetrics(recorder))
	runErr := c.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("failed to write metrics", zap.String("path", cfg.MetricsTextfile), zap.Error(err))
		} else {
			logger.Info("metrics written", zap.String("path", cfg.MetricsTextfile))
		}
	}

	if runErr != nil {
		return fmt.Errorf("running console: %w", runErr)
	}

	return nil
}

// initLogger initializes a zap logger with the specified log level and output.
func initLogger(level, output string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
