package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/phrazzld/mnemo-api/internal/platform/migrate"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts, autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, autoMigrate bool) error {
	cfg, logger, err := bootstrap(opts)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}

	if autoMigrate {
		m, err := migrate.New(db, cfg.Database.Driver, logger)
		if err != nil {
			_ = db.Close()
			return err
		}
		if err := m.Up(ctx); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	return app.Run(ctx)
}
