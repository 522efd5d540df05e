// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const sentencePairColumns = `id, source_sentence, target_sentence, source_language, target_language, created_at`

const createSentencePair = `INSERT INTO sentence_pairs (
    source_sentence, target_sentence, source_language, target_language, created_at
) VALUES (?, ?, ?, ?, ?)`

// CreateSentencePairParams holds the columns for a new sentence pair.
type CreateSentencePairParams struct {
	SourceSentence string
	TargetSentence string
	SourceLanguage string
	TargetLanguage string
	CreatedAt      time.Time
}

func (q *Queries) CreateSentencePair(ctx context.Context, arg CreateSentencePairParams) (SentencePair, error) {
	result, err := q.db.ExecContext(ctx, createSentencePair,
		arg.SourceSentence,
		arg.TargetSentence,
		arg.SourceLanguage,
		arg.TargetLanguage,
		arg.CreatedAt,
	)
	if err != nil {
		return SentencePair{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return SentencePair{}, err
	}
	return q.GetSentencePair(ctx, id)
}

const getSentencePair = `SELECT ` + sentencePairColumns + ` FROM sentence_pairs WHERE id = ?`

func (q *Queries) GetSentencePair(ctx context.Context, id int64) (SentencePair, error) {
	row := q.db.QueryRowContext(ctx, getSentencePair, id)
	return scanSentencePair(row)
}

const listSentencePairs = `SELECT ` + sentencePairColumns + ` FROM sentence_pairs ORDER BY id`

func (q *Queries) ListSentencePairs(ctx context.Context) ([]SentencePair, error) {
	rows, err := q.db.QueryContext(ctx, listSentencePairs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []SentencePair{}
	for rows.Next() {
		i, err := scanSentencePair(rows)
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

const updateSentencePairText = `UPDATE sentence_pairs
SET source_sentence = ?, target_sentence = ?
WHERE id = ?`

// UpdateSentencePairTextParams holds the replaceable text columns of a pair.
type UpdateSentencePairTextParams struct {
	SourceSentence string
	TargetSentence string
	ID             int64
}

func (q *Queries) UpdateSentencePairText(ctx context.Context, arg UpdateSentencePairTextParams) (SentencePair, error) {
	result, err := q.db.ExecContext(ctx, updateSentencePairText, arg.SourceSentence, arg.TargetSentence, arg.ID)
	if err != nil {
		return SentencePair{}, err
	}
	if err := requireAffected(result); err != nil {
		return SentencePair{}, err
	}
	return q.GetSentencePair(ctx, arg.ID)
}

const deleteSentencePair = `DELETE FROM sentence_pairs WHERE id = ?`

func (q *Queries) DeleteSentencePair(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSentencePair, id)
	return err
}

const deleteAllSentencePairs = `DELETE FROM sentence_pairs`

func (q *Queries) DeleteAllSentencePairs(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAllSentencePairs)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countSentencePairs = `SELECT COUNT(*) FROM sentence_pairs`

func (q *Queries) CountSentencePairs(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countSentencePairs)
	var count int64
	err := row.Scan(&count)
	return count, err
}

// requireAffected maps a write that touched no rows to sql.ErrNoRows.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSentencePair(row rowScanner) (SentencePair, error) {
	var i SentencePair
	err := row.Scan(
		&i.ID,
		&i.SourceSentence,
		&i.TargetSentence,
		&i.SourceLanguage,
		&i.TargetLanguage,
		&i.CreatedAt,
	)
	return i, err
}
