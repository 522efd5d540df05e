// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/wordalign/internal/model"
	"github.com/olegiv/wordalign/internal/store"
)

// ErrValidationFailed is returned by Import when the data does not validate.
// The individual problems are listed in ImportResult.Errors.
var ErrValidationFailed = errors.New("validation failed")

// Importer loads an ExportData document into the database.
type Importer struct {
	store  *store.Queries
	db     *sql.DB
	logger *slog.Logger
}

// NewImporter creates a new Importer.
func NewImporter(queries *store.Queries, db *sql.DB, logger *slog.Logger) *Importer {
	return &Importer{store: queries, db: db, logger: logger}
}

// Validate checks the document without touching the database.
func (i *Importer) Validate(data *ExportData) []ImportError {
	var errs []ImportError

	if data.Version == "" {
		errs = append(errs, ImportError{Entity: "export", Message: "missing version"})
	} else if data.Version != ExportVersion {
		errs = append(errs, ImportError{
			Entity:  "export",
			Message: fmt.Sprintf("unsupported version %q, expected %q", data.Version, ExportVersion),
		})
	}

	for n, p := range data.SentencePairs {
		id := pairRef(n, p)
		for _, f := range []struct{ name, value string }{
			{"source_sentence", p.SourceSentence},
			{"target_sentence", p.TargetSentence},
			{"source_language", p.SourceLanguage},
			{"target_language", p.TargetLanguage},
		} {
			if strings.TrimSpace(f.value) == "" {
				errs = append(errs, ImportError{Entity: EntitySentencePairs, ID: id, Message: f.name + " is required"})
			}
		}
		for _, lang := range []string{p.SourceLanguage, p.TargetLanguage} {
			if utf8.RuneCountInString(strings.TrimSpace(lang)) > model.MaxLanguageCodeLength {
				errs = append(errs, ImportError{
					Entity:  EntitySentencePairs,
					ID:      id,
					Message: fmt.Sprintf("language code %q is longer than %d characters", lang, model.MaxLanguageCodeLength),
				})
			}
		}
		for k, a := range p.Alignments {
			if a.SourceIndices == nil || a.TargetIndices == nil {
				errs = append(errs, ImportError{
					Entity:  EntityAlignments,
					ID:      id + "/" + strconv.Itoa(k),
					Message: "source_indices and target_indices are required",
				})
			}
		}
	}

	return errs
}

// Import validates data and, unless opts.DryRun is set, writes it in a
// single transaction. Pairs and alignments get new ids; created_at is kept.
func (i *Importer) Import(ctx context.Context, data *ExportData, opts ImportOptions) (*ImportResult, error) {
	result := NewImportResult(opts.DryRun)

	if errs := i.Validate(data); len(errs) > 0 {
		for _, e := range errs {
			result.AddError(e.Entity, e.ID, e.Message)
		}
		return result, ErrValidationFailed
	}

	if opts.DryRun {
		for _, p := range data.SentencePairs {
			result.IncrementCreated(EntitySentencePairs)
			for range p.Alignments {
				result.IncrementCreated(EntityAlignments)
			}
		}
		return result, nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := i.store.WithTx(tx)

	if opts.Replace {
		n, err := queries.DeleteAllAlignments(ctx)
		if err != nil {
			return nil, fmt.Errorf("deleting alignments: %w", err)
		}
		result.Deleted[EntityAlignments] = int(n)
		n, err = queries.DeleteAllSentencePairs(ctx)
		if err != nil {
			return nil, fmt.Errorf("deleting sentence pairs: %w", err)
		}
		result.Deleted[EntitySentencePairs] = int(n)
	}

	now := time.Now().UTC()
	for n, p := range data.SentencePairs {
		pair, err := queries.CreateSentencePair(ctx, store.CreateSentencePairParams{
			SourceSentence: strings.TrimSpace(p.SourceSentence),
			TargetSentence: strings.TrimSpace(p.TargetSentence),
			SourceLanguage: strings.TrimSpace(p.SourceLanguage),
			TargetLanguage: strings.TrimSpace(p.TargetLanguage),
			CreatedAt:      createdAtOr(p.CreatedAt, now),
		})
		if err != nil {
			return nil, fmt.Errorf("creating sentence pair %s: %w", pairRef(n, p), err)
		}
		result.IncrementCreated(EntitySentencePairs)

		for _, a := range p.Alignments {
			if _, err := queries.CreateAlignment(ctx, store.CreateAlignmentParams{
				SentencePairID: pair.ID,
				SourceIndices:  a.SourceIndices,
				TargetIndices:  a.TargetIndices,
				CreatedAt:      createdAtOr(a.CreatedAt, now),
			}); err != nil {
				return nil, fmt.Errorf("creating alignment for sentence pair %s: %w", pairRef(n, p), err)
			}
			result.IncrementCreated(EntityAlignments)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.Info("corpus imported",
		"export_id", data.ID,
		"replace", opts.Replace,
		"sentence_pairs", result.Created[EntitySentencePairs],
		"alignments", result.Created[EntityAlignments])
	return result, nil
}

// ImportFromReader decodes a JSON document from r and imports it.
func (i *Importer) ImportFromReader(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return i.Import(ctx, &data, opts)
}

// ImportFromFile imports the JSON document at path.
func (i *Importer) ImportFromFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return i.ImportFromReader(ctx, f, opts)
}

// pairRef names a pair in errors by its exported id, or by position when
// the id is missing.
func pairRef(n int, p ExportSentencePair) string {
	if p.ID != 0 {
		return strconv.FormatInt(p.ID, 10)
	}
	return "#" + strconv.Itoa(n)
}

func createdAtOr(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}
