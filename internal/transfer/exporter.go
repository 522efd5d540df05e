// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/wordalign/internal/store"
)

// Exporter writes the corpus as an ExportData document.
type Exporter struct {
	store  *store.Queries
	logger *slog.Logger
}

// NewExporter creates a new Exporter.
func NewExporter(queries *store.Queries, logger *slog.Logger) *Exporter {
	return &Exporter{store: queries, logger: logger}
}

// Export reads every sentence pair with its alignments.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	pairs, err := e.store.ListSentencePairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sentence pairs: %w", err)
	}

	alignments, err := e.store.ListAlignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing alignments: %w", err)
	}
	byPair := make(map[int64][]ExportAlignment, len(pairs))
	for _, a := range alignments {
		byPair[a.SentencePairID] = append(byPair[a.SentencePairID], ExportAlignment{
			SourceIndices: a.SourceIndices,
			TargetIndices: a.TargetIndices,
			CreatedAt:     a.CreatedAt,
		})
	}

	data := &ExportData{
		Version:       ExportVersion,
		ID:            uuid.NewString(),
		ExportedAt:    time.Now().UTC(),
		SentencePairs: make([]ExportSentencePair, 0, len(pairs)),
	}
	for _, p := range pairs {
		exported := byPair[p.ID]
		if exported == nil {
			exported = []ExportAlignment{}
		}
		data.SentencePairs = append(data.SentencePairs, ExportSentencePair{
			ID:             p.ID,
			SourceSentence: p.SourceSentence,
			TargetSentence: p.TargetSentence,
			SourceLanguage: p.SourceLanguage,
			TargetLanguage: p.TargetLanguage,
			CreatedAt:      p.CreatedAt,
			Alignments:     exported,
		})
	}

	e.logger.Info("corpus exported",
		"export_id", data.ID,
		"sentence_pairs", len(pairs),
		"alignments", len(alignments))
	return data, nil
}

// ExportToWriter writes indented JSON to w.
func (e *Exporter) ExportToWriter(ctx context.Context, w io.Writer) error {
	data, err := e.Export(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// ExportToFile writes the export to path, creating or truncating it.
func (e *Exporter) ExportToFile(ctx context.Context, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()
	return e.ExportToWriter(ctx, f)
}
