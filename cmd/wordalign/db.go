// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olegiv/wordalign/internal/store"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance commands",
	}
	cmd.AddCommand(newMigrateCmd(), newSeedCmd())
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			v, err := store.MigrationVersion(a.db)
			if err != nil {
				return fmt.Errorf("reading migration version: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "database %s at migration version %d\n", a.cfg.DBPath, v)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo sentence pairs into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := store.Seed(cmd.Context(), a.db, true); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}
			n, err := store.New(a.db).CountSentencePairs(cmd.Context())
			if err != nil {
				return fmt.Errorf("counting sentence pairs: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "database holds %d sentence pairs\n", n)
			return nil
		},
	}
}
