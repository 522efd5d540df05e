// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"time"

	"github.com/olegiv/wordalign/internal/model"
)

// SentencePair is a row of the sentence_pairs table.
type SentencePair struct {
	ID             int64     `json:"id"`
	SourceSentence string    `json:"source_sentence"`
	TargetSentence string    `json:"target_sentence"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	CreatedAt      time.Time `json:"created_at"`
}

// Alignment is a row of the alignments table.
type Alignment struct {
	ID             int64         `json:"id"`
	SentencePairID int64         `json:"sentence_pair_id"`
	SourceIndices  model.Indices `json:"source_indices"`
	TargetIndices  model.Indices `json:"target_indices"`
	CreatedAt      time.Time     `json:"created_at"`
}
