// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olegiv/wordalign/internal/store"
	"github.com/olegiv/wordalign/internal/transfer"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all sentence pairs and alignments as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			exporter := transfer.NewExporter(store.New(a.db), a.logger)
			if output == "" {
				return exporter.ExportToWriter(cmd.Context(), cmd.OutOrStdout())
			}
			return exporter.ExportToFile(cmd.Context(), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		file string
		opts transfer.ImportOptions
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import sentence pairs and alignments from a JSON export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			importer := transfer.NewImporter(store.New(a.db), a.db, a.logger)
			result, err := importer.ImportFromFile(cmd.Context(), file, opts)
			if errors.Is(err, transfer.ErrValidationFailed) {
				for _, e := range result.Errors {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %s\n", e.Entity, e.ID, e.Message)
				}
				return fmt.Errorf("%w: %d problems found", err, len(result.Errors))
			}
			if err != nil {
				return err
			}

			verb := "imported"
			if result.DryRun {
				verb = "would import"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d sentence pairs and %d alignments\n",
				verb,
				result.Created[transfer.EntitySentencePairs],
				result.Created[transfer.EntityAlignments])
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "export file to read")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "delete existing sentence pairs first")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate and count without writing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
