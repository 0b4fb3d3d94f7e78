package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"offsite/internal/config"
	"offsite/internal/content"
	"offsite/internal/datasource"
	"offsite/internal/domain/notifications"
	"offsite/internal/lib/logger"
	"offsite/internal/lib/sl"
	"offsite/internal/repository"
	"offsite/internal/repository/sqlite"
	"offsite/internal/server"
	"offsite/internal/templates"
	"offsite/web"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Env, os.Stdout)
	log.Info("starting offsite",
		slog.String("business", cfg.Business.Name),
		slog.String("env", cfg.Env),
		slog.Bool("debug", cfg.Debug),
	)

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("local store ready", slog.String("path", cfg.GetStorePath()))

	client, closer, err := datasource.Open(cfg, db.DB, log)
	if err != nil {
		return err
	}
	defer closeQuietly(closer, log)

	tmpl, err := templates.NewManager(web.Templates(), cfg.Debug, server.TemplateFuncs(cfg))
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	notifier := notifications.NewLeadNotifier(
		notifications.NewLogEmailProvider(log.With(slog.String("component", "email"))),
		cfg.Leads.NotifyEmail,
	)

	srv := server.New(cfg, server.Deps{
		Catalog: content.NewCatalog(client, log),
		Repos: &repository.Repositories{
			Leads:    sqlite.NewLeadRepo(db),
			Settings: sqlite.NewSettingsRepo(db),
		},
		Notifier:  notifier,
		Templates: tmpl,
		Static:    web.Static(),
	}, log)

	if !cfg.AdminEnabled() {
		log.Warn("lead inbox disabled: ADMIN_EMAIL and ADMIN_PASSWORD_HASH are not set")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// openStore opens and migrates the local SQLite store.
func openStore(cfg *config.Config) (*sqlite.DB, error) {
	db, err := sqlite.New(cfg.GetStorePath())
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: %w", err)
	}
	return db, nil
}

func closeQuietly(c io.Closer, log *slog.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Error("failed to close content backend", sl.Err(err))
	}
}
