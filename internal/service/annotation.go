// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the annotation business rules on top of the store.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/wordalign/internal/model"
	"github.com/olegiv/wordalign/internal/store"
)

// ErrSentencePairNotFound is returned when an alignment references a pair that does not exist.
var ErrSentencePairNotFound = errors.New("sentence pair not found")

// AnnotationService manages sentence pairs and their alignments.
type AnnotationService struct {
	db      *sql.DB
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewAnnotationService creates a new AnnotationService.
func NewAnnotationService(db *sql.DB, logger *slog.Logger) *AnnotationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnotationService{
		db:      db,
		queries: store.New(db),
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreatePairInput holds the fields of a new sentence pair.
type CreatePairInput struct {
	SourceSentence string
	TargetSentence string
	SourceLanguage string
	TargetLanguage string
}

// UpdatePairTextInput holds the replaceable text fields of a pair. Nil leaves a field unchanged.
type UpdatePairTextInput struct {
	SourceSentence *string
	TargetSentence *string
}

// CreateAlignmentInput holds the fields of a new alignment.
type CreateAlignmentInput struct {
	SentencePairID int64
	SourceIndices  model.Indices
	TargetIndices  model.Indices
}

// UpdateAlignmentInput holds replaceable indices. Nil leaves a field unchanged.
type UpdateAlignmentInput struct {
	SourceIndices model.Indices
	TargetIndices model.Indices
}

// AlignmentFilter narrows ListAlignments.
type AlignmentFilter struct {
	SentencePairID *int64
}

// CreatePair stores a new sentence pair. The returned pair has no alignments.
func (s *AnnotationService) CreatePair(ctx context.Context, in CreatePairInput) (*model.SentencePair, error) {
	row, err := s.queries.CreateSentencePair(ctx, store.CreateSentencePairParams{
		SourceSentence: in.SourceSentence,
		TargetSentence: in.TargetSentence,
		SourceLanguage: in.SourceLanguage,
		TargetLanguage: in.TargetLanguage,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating sentence pair: %w", err)
	}

	pair := pairFromRow(row, nil)
	s.logger.InfoContext(ctx, "sentence pair created", "pair_id", pair.ID, "pair", pair.String())
	return pair, nil
}

// GetPair returns a sentence pair with its alignments.
func (s *AnnotationService) GetPair(ctx context.Context, id int64) (*model.SentencePair, error) {
	return s.getPair(ctx, s.queries, id)
}

func (s *AnnotationService) getPair(ctx context.Context, q *store.Queries, id int64) (*model.SentencePair, error) {
	row, err := q.GetSentencePair(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting sentence pair %d: %w", id, err)
	}

	alignments, err := q.ListAlignmentsForSentencePair(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing alignments for pair %d: %w", id, err)
	}

	return pairFromRow(row, alignments), nil
}

// ListPairs returns every sentence pair ordered by id, each with its alignments.
func (s *AnnotationService) ListPairs(ctx context.Context) ([]*model.SentencePair, error) {
	rows, err := s.queries.ListSentencePairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sentence pairs: %w", err)
	}

	alignments, err := s.queries.ListAlignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing alignments: %w", err)
	}

	byPair := make(map[int64][]store.Alignment, len(rows))
	for _, a := range alignments {
		byPair[a.SentencePairID] = append(byPair[a.SentencePairID], a)
	}

	pairs := make([]*model.SentencePair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, pairFromRow(r, byPair[r.ID]))
	}
	return pairs, nil
}

// UpdatePairText replaces the pair's sentences and deletes all of its alignments,
// since edited text may invalidate their token indices. Languages are never changed.
func (s *AnnotationService) UpdatePairText(ctx context.Context, id int64, in UpdatePairTextInput) (*model.SentencePair, error) {
	var (
		pair    *model.SentencePair
		deleted int64
	)

	err := s.inTx(ctx, func(q *store.Queries) error {
		existing, err := q.GetSentencePair(ctx, id)
		if err != nil {
			return fmt.Errorf("getting sentence pair %d: %w", id, err)
		}

		params := store.UpdateSentencePairTextParams{
			ID:             id,
			SourceSentence: existing.SourceSentence,
			TargetSentence: existing.TargetSentence,
		}
		if in.SourceSentence != nil {
			params.SourceSentence = *in.SourceSentence
		}
		if in.TargetSentence != nil {
			params.TargetSentence = *in.TargetSentence
		}

		if _, err := q.UpdateSentencePairText(ctx, params); err != nil {
			return fmt.Errorf("updating sentence pair %d: %w", id, err)
		}

		deleted, err = q.DeleteAlignmentsForSentencePair(ctx, id)
		if err != nil {
			return fmt.Errorf("clearing alignments for pair %d: %w", id, err)
		}

		pair, err = s.getPair(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "sentence pair text updated", "pair_id", id, "alignments_deleted", deleted)
	return pair, nil
}

// DeletePair removes a sentence pair together with its alignments.
func (s *AnnotationService) DeletePair(ctx context.Context, id int64) error {
	err := s.inTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetSentencePair(ctx, id); err != nil {
			return fmt.Errorf("getting sentence pair %d: %w", id, err)
		}
		if _, err := q.DeleteAlignmentsForSentencePair(ctx, id); err != nil {
			return fmt.Errorf("deleting alignments for pair %d: %w", id, err)
		}
		if err := q.DeleteSentencePair(ctx, id); err != nil {
			return fmt.Errorf("deleting sentence pair %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "sentence pair deleted", "pair_id", id)
	return nil
}

// CreateAlignment links a new alignment to an existing sentence pair.
func (s *AnnotationService) CreateAlignment(ctx context.Context, in CreateAlignmentInput) (*model.Alignment, error) {
	if _, err := s.queries.GetSentencePair(ctx, in.SentencePairID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSentencePairNotFound
		}
		return nil, fmt.Errorf("getting sentence pair %d: %w", in.SentencePairID, err)
	}

	row, err := s.queries.CreateAlignment(ctx, store.CreateAlignmentParams{
		SentencePairID: in.SentencePairID,
		SourceIndices:  orEmpty(in.SourceIndices),
		TargetIndices:  orEmpty(in.TargetIndices),
		CreatedAt:      s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating alignment: %w", err)
	}

	a := alignmentFromRow(row)
	s.logger.InfoContext(ctx, "alignment created", "alignment_id", a.ID, "pair_id", a.SentencePairID)
	return a, nil
}

// GetAlignment returns a single alignment.
func (s *AnnotationService) GetAlignment(ctx context.Context, id int64) (*model.Alignment, error) {
	row, err := s.queries.GetAlignment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting alignment %d: %w", id, err)
	}
	return alignmentFromRow(row), nil
}

// ListAlignments returns alignments ordered by id.
func (s *AnnotationService) ListAlignments(ctx context.Context, filter AlignmentFilter) ([]*model.Alignment, error) {
	var (
		rows []store.Alignment
		err  error
	)
	if filter.SentencePairID != nil {
		rows, err = s.queries.ListAlignmentsForSentencePair(ctx, *filter.SentencePairID)
	} else {
		rows, err = s.queries.ListAlignments(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listing alignments: %w", err)
	}
	return alignmentsFromRows(rows), nil
}

// UpdateAlignment replaces the indices of an alignment. The owning pair cannot change.
func (s *AnnotationService) UpdateAlignment(ctx context.Context, id int64, in UpdateAlignmentInput) (*model.Alignment, error) {
	var a *model.Alignment

	err := s.inTx(ctx, func(q *store.Queries) error {
		existing, err := q.GetAlignment(ctx, id)
		if err != nil {
			return fmt.Errorf("getting alignment %d: %w", id, err)
		}

		params := store.UpdateAlignmentIndicesParams{
			ID:            id,
			SourceIndices: existing.SourceIndices,
			TargetIndices: existing.TargetIndices,
		}
		if in.SourceIndices != nil {
			params.SourceIndices = in.SourceIndices
		}
		if in.TargetIndices != nil {
			params.TargetIndices = in.TargetIndices
		}

		row, err := q.UpdateAlignmentIndices(ctx, params)
		if err != nil {
			return fmt.Errorf("updating alignment %d: %w", id, err)
		}
		a = alignmentFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "alignment updated", "alignment_id", id)
	return a, nil
}

// DeleteAlignment removes a single alignment.
func (s *AnnotationService) DeleteAlignment(ctx context.Context, id int64) error {
	if _, err := s.queries.GetAlignment(ctx, id); err != nil {
		return fmt.Errorf("getting alignment %d: %w", id, err)
	}
	if err := s.queries.DeleteAlignment(ctx, id); err != nil {
		return fmt.Errorf("deleting alignment %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "alignment deleted", "alignment_id", id)
	return nil
}

// ResetAlignments deletes every alignment regardless of owning pair and
// returns how many were removed.
func (s *AnnotationService) ResetAlignments(ctx context.Context) (int64, error) {
	deleted, err := s.queries.DeleteAllAlignments(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting all alignments: %w", err)
	}
	s.logger.WarnContext(ctx, "all alignments reset", "deleted", deleted)
	return deleted, nil
}

// inTx runs fn inside a transaction and commits when fn returns nil.
func (s *AnnotationService) inTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func orEmpty(ix model.Indices) model.Indices {
	if ix == nil {
		return model.Indices{}
	}
	return ix
}

func pairFromRow(row store.SentencePair, alignments []store.Alignment) *model.SentencePair {
	return &model.SentencePair{
		ID:             row.ID,
		SourceSentence: row.SourceSentence,
		TargetSentence: row.TargetSentence,
		SourceLanguage: row.SourceLanguage,
		TargetLanguage: row.TargetLanguage,
		Alignments:     alignmentsFromRows(alignments),
		CreatedAt:      row.CreatedAt,
	}
}

func alignmentFromRow(row store.Alignment) *model.Alignment {
	return &model.Alignment{
		ID:             row.ID,
		SentencePairID: row.SentencePairID,
		SourceIndices:  orEmpty(row.SourceIndices),
		TargetIndices:  orEmpty(row.TargetIndices),
		CreatedAt:      row.CreatedAt,
	}
}

func alignmentsFromRows(rows []store.Alignment) []*model.Alignment {
	out := make([]*model.Alignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, alignmentFromRow(r))
	}
	return out
}
