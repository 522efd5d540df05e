// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the annotation domain types shared by the store,
// service and API layers.
package model

import "time"

// MaxLanguageCodeLength is the maximum length of a language code.
const MaxLanguageCodeLength = 10

// SentencePair is a pair of sentences in two languages annotated for alignment.
type SentencePair struct {
	ID             int64        `json:"id"`
	SourceSentence string       `json:"source_sentence"`
	TargetSentence string       `json:"target_sentence"`
	SourceLanguage string       `json:"source_language"` // short code, e.g. en
	TargetLanguage string       `json:"target_language"` // short code, e.g. de
	Alignments     []*Alignment `json:"alignments"`      // read-only, always present
	CreatedAt      time.Time    `json:"created_at"`
}

// String returns a short human-readable label, e.g. "en to de pair".
func (p *SentencePair) String() string {
	return p.SourceLanguage + " to " + p.TargetLanguage + " pair"
}
