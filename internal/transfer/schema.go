// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer exports the annotated corpus to JSON and imports it back.
package transfer

import (
	"time"

	"github.com/olegiv/wordalign/internal/model"
)

// ExportVersion is the format version written by the exporter.
const ExportVersion = "1.0"

// Entity names used in import counts and errors.
const (
	EntitySentencePairs = "sentence_pairs"
	EntityAlignments    = "alignments"
)

// ExportData is the root document of an export file.
type ExportData struct {
	Version       string               `json:"version"`
	ID            string               `json:"id"`
	ExportedAt    time.Time            `json:"exported_at"`
	SentencePairs []ExportSentencePair `json:"sentence_pairs"`
}

// ExportSentencePair is a sentence pair with its alignments nested.
// ID is informational only; import assigns new ids.
type ExportSentencePair struct {
	ID             int64             `json:"id"`
	SourceSentence string            `json:"source_sentence"`
	TargetSentence string            `json:"target_sentence"`
	SourceLanguage string            `json:"source_language"`
	TargetLanguage string            `json:"target_language"`
	CreatedAt      time.Time         `json:"created_at"`
	Alignments     []ExportAlignment `json:"alignments"`
}

// ExportAlignment is an alignment without its owning pair id.
type ExportAlignment struct {
	SourceIndices model.Indices `json:"source_indices"`
	TargetIndices model.Indices `json:"target_indices"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ImportOptions controls an import run.
type ImportOptions struct {
	// Replace deletes every existing sentence pair before inserting.
	Replace bool
	// DryRun validates and counts without writing.
	DryRun bool
}

// ImportError describes a problem with one entity in the import data.
type ImportError struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ImportResult reports what an import did, or would do for a dry run.
type ImportResult struct {
	Success bool           `json:"success"`
	DryRun  bool           `json:"dry_run"`
	Created map[string]int `json:"created"`
	Deleted map[string]int `json:"deleted,omitempty"`
	Errors  []ImportError  `json:"errors,omitempty"`
}

// NewImportResult returns an empty successful result.
func NewImportResult(dryRun bool) *ImportResult {
	return &ImportResult{
		Success: true,
		DryRun:  dryRun,
		Created: make(map[string]int),
		Deleted: make(map[string]int),
	}
}

// IncrementCreated bumps the created count for entity.
func (r *ImportResult) IncrementCreated(entity string) {
	r.Created[entity]++
}

// AddError records an error and marks the result as failed.
func (r *ImportResult) AddError(entity, id, message string) {
	r.Errors = append(r.Errors, ImportError{Entity: entity, ID: id, Message: message})
	r.Success = false
}
