// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/wordalign/internal/model"
)

// seedPair is a demo sentence pair with its alignments.
type seedPair struct {
	params     CreateSentencePairParams
	alignments [][2]model.Indices
}

var demoPairs = []seedPair{
	{
		params: CreateSentencePairParams{
			SourceSentence: "The cat sleeps on the sofa",
			TargetSentence: "Die Katze schläft auf dem Sofa",
			SourceLanguage: "en",
			TargetLanguage: "de",
		},
		alignments: [][2]model.Indices{
			{{0, 1}, {0, 1}},
			{{2}, {2}},
			{{3}, {3}},
			{{4, 5}, {4, 5}},
		},
	},
	{
		params: CreateSentencePairParams{
			SourceSentence: "I would like a coffee",
			TargetSentence: "Je voudrais un café",
			SourceLanguage: "en",
			TargetLanguage: "fr",
		},
		alignments: [][2]model.Indices{
			{{0}, {0}},
			{{1, 2}, {1}},
			{{3}, {2}},
			{{4}, {3}},
		},
	},
	{
		params: CreateSentencePairParams{
			SourceSentence: "Where is the train station",
			TargetSentence: "Dónde está la estación de tren",
			SourceLanguage: "en",
			TargetLanguage: "es",
		},
	},
}

// Seed creates demo sentence pairs when doSeed is true and the database is empty.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		slog.Debug("seeding disabled, skipping")
		return nil
	}

	queries := New(db)

	count, err := queries.CountSentencePairs(ctx)
	if err != nil {
		return fmt.Errorf("counting sentence pairs: %w", err)
	}
	if count > 0 {
		slog.Info("sentence pairs already exist, skipping seed", "count", count)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := queries.WithTx(tx)
	now := time.Now().UTC()
	alignments := 0

	for _, demo := range demoPairs {
		params := demo.params
		params.CreatedAt = now
		pair, err := qtx.CreateSentencePair(ctx, params)
		if err != nil {
			return fmt.Errorf("creating demo pair: %w", err)
		}

		for _, a := range demo.alignments {
			if _, err := qtx.CreateAlignment(ctx, CreateAlignmentParams{
				SentencePairID: pair.ID,
				SourceIndices:  a[0],
				TargetIndices:  a[1],
				CreatedAt:      now,
			}); err != nil {
				return fmt.Errorf("creating demo alignment: %w", err)
			}
			alignments++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded demo data", "sentence_pairs", len(demoPairs), "alignments", alignments)
	return nil
}
