// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/wordalign/internal/model"
)

const alignmentColumns = `id, sentence_pair_id, source_indices, target_indices, created_at`

const createAlignment = `INSERT INTO alignments (
    sentence_pair_id, source_indices, target_indices, created_at
) VALUES (?, ?, ?, ?)`

// CreateAlignmentParams holds the columns for a new alignment.
type CreateAlignmentParams struct {
	SentencePairID int64
	SourceIndices  model.Indices
	TargetIndices  model.Indices
	CreatedAt      time.Time
}

func (q *Queries) CreateAlignment(ctx context.Context, arg CreateAlignmentParams) (Alignment, error) {
	result, err := q.db.ExecContext(ctx, createAlignment,
		arg.SentencePairID,
		arg.SourceIndices,
		arg.TargetIndices,
		arg.CreatedAt,
	)
	if err != nil {
		return Alignment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Alignment{}, err
	}
	return q.GetAlignment(ctx, id)
}

const getAlignment = `SELECT ` + alignmentColumns + ` FROM alignments WHERE id = ?`

func (q *Queries) GetAlignment(ctx context.Context, id int64) (Alignment, error) {
	row := q.db.QueryRowContext(ctx, getAlignment, id)
	return scanAlignment(row)
}

const listAlignments = `SELECT ` + alignmentColumns + ` FROM alignments ORDER BY id`

func (q *Queries) ListAlignments(ctx context.Context) ([]Alignment, error) {
	return q.queryAlignments(ctx, listAlignments)
}

const listAlignmentsForSentencePair = `SELECT ` + alignmentColumns + `
FROM alignments
WHERE sentence_pair_id = ?
ORDER BY id`

func (q *Queries) ListAlignmentsForSentencePair(ctx context.Context, sentencePairID int64) ([]Alignment, error) {
	return q.queryAlignments(ctx, listAlignmentsForSentencePair, sentencePairID)
}

const updateAlignmentIndices = `UPDATE alignments
SET source_indices = ?, target_indices = ?
WHERE id = ?`

// UpdateAlignmentIndicesParams holds the replaceable index columns of an alignment.
type UpdateAlignmentIndicesParams struct {
	SourceIndices model.Indices
	TargetIndices model.Indices
	ID            int64
}

func (q *Queries) UpdateAlignmentIndices(ctx context.Context, arg UpdateAlignmentIndicesParams) (Alignment, error) {
	result, err := q.db.ExecContext(ctx, updateAlignmentIndices, arg.SourceIndices, arg.TargetIndices, arg.ID)
	if err != nil {
		return Alignment{}, err
	}
	if err := requireAffected(result); err != nil {
		return Alignment{}, err
	}
	return q.GetAlignment(ctx, arg.ID)
}

const deleteAlignment = `DELETE FROM alignments WHERE id = ?`

func (q *Queries) DeleteAlignment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteAlignment, id)
	return err
}

const deleteAlignmentsForSentencePair = `DELETE FROM alignments WHERE sentence_pair_id = ?`

func (q *Queries) DeleteAlignmentsForSentencePair(ctx context.Context, sentencePairID int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAlignmentsForSentencePair, sentencePairID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAllAlignments = `DELETE FROM alignments`

func (q *Queries) DeleteAllAlignments(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAllAlignments)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countAlignments = `SELECT COUNT(*) FROM alignments`

func (q *Queries) CountAlignments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countAlignments)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func (q *Queries) queryAlignments(ctx context.Context, query string, args ...any) ([]Alignment, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Alignment{}
	for rows.Next() {
		i, err := scanAlignment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanAlignment(row rowScanner) (Alignment, error) {
	var i Alignment
	err := row.Scan(
		&i.ID,
		&i.SentencePairID,
		&i.SourceIndices,
		&i.TargetIndices,
		&i.CreatedAt,
	)
	return i, err
}
