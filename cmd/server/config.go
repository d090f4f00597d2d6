package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/mnemo-api/internal/config"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
)

// loadAppConfig loads the application configuration from environment
// variables and the optional config file.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger configures the application logger from cfg and logs the
// non-secret parts of the configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	l.Debug("auth configuration",
		slog.Bool("bearer_tokens_enabled", cfg.Auth.TokensEnabled()))

	return l, nil
}

// bootstrap loads configuration and logging, the prologue of every
// subcommand that needs them.
func bootstrap(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := loadAppConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	l, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}
