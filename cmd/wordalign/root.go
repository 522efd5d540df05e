// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/wordalign/internal/config"
	"github.com/olegiv/wordalign/internal/logging"
	"github.com/olegiv/wordalign/internal/store"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wordalign",
		Short: "Word alignment annotation service",
		Long: `wordalign stores sentence pairs and the word alignments annotated on them,
and serves them over a JSON REST API.

Configuration is read from WORDALIGN_* environment variables and an optional .env file.`,
		Example: `wordalign serve
wordalign db migrate
wordalign export -o corpus.json
wordalign import -f corpus.json --replace`,
		Version:       buildInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(
		newServeCmd(),
		newDBCmd(),
		newExportCmd(),
		newImportCmd(),
		newVersionCmd(),
	)
	return root
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

// openApp loads .env and configuration, builds the logger writing to logOut
// and opens the database with migrations applied.
func openApp(logOut io.Writer) (*app, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	logger.Debug("opening database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("error closing database connection", "error", err)
	}
}
