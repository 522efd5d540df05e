// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olegiv/wordalign/internal/server"
	"github.com/olegiv/wordalign/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := store.Seed(ctx, a.db, a.cfg.DoSeed); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}

			info := buildInfo()
			h := server.NewRouter(a.cfg, a.db, a.logger, info)

			addr := a.cfg.ServerAddr()
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}

			a.logger.Info("wordalign ready",
				"version", info.Version,
				"env", a.cfg.Env,
				"db", a.cfg.DBPath,
				"rate_limit", a.cfg.APIRateLimit)

			return server.Run(ctx, server.New(addr, h, a.cfg.RequestTimeout), ln, a.logger)
		},
	}
}
