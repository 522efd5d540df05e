// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/wordalign/internal/model"
	"github.com/olegiv/wordalign/internal/service"
)

// ============================================================================
// Request Types
// ============================================================================

// CreateSentencePairRequest represents the request body for creating a sentence pair.
// Nested alignments, id and created_at are read-only and ignored.
type CreateSentencePairRequest struct {
	SourceSentence *string `json:"source_sentence"`
	TargetSentence *string `json:"target_sentence"`
	SourceLanguage *string `json:"source_language"`
	TargetLanguage *string `json:"target_language"`
}

// UpdateSentencePairRequest represents the request body for updating a sentence pair.
// Only the sentence texts can change; language codes in the body are ignored.
type UpdateSentencePairRequest struct {
	SourceSentence *string `json:"source_sentence"`
	TargetSentence *string `json:"target_sentence"`
}

// ============================================================================
// Handlers
// ============================================================================

// ListSentencePairs handles GET /api/sentence-pairs
func (h *Handler) ListSentencePairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.svc.ListPairs(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list sentence pairs", "error", err)
		WriteInternalError(w, "Failed to list sentence pairs")
		return
	}
	WriteSuccess(w, pairs)
}

// CreateSentencePair handles POST /api/sentence-pairs
func (h *Handler) CreateSentencePair(w http.ResponseWriter, r *http.Request) {
	var req CreateSentencePairRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := fieldErrors{}
	errs.requireText("source_sentence", req.SourceSentence)
	errs.requireText("target_sentence", req.TargetSentence)
	errs.requireLanguage("source_language", req.SourceLanguage)
	errs.requireLanguage("target_language", req.TargetLanguage)
	if !errs.empty() {
		WriteValidationError(w, errs)
		return
	}

	pair, err := h.svc.CreatePair(r.Context(), service.CreatePairInput{
		SourceSentence: *req.SourceSentence,
		TargetSentence: *req.TargetSentence,
		SourceLanguage: *req.SourceLanguage,
		TargetLanguage: *req.TargetLanguage,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create sentence pair", "error", err)
		WriteInternalError(w, "Failed to create sentence pair")
		return
	}

	WriteCreated(w, pair)
}

// GetSentencePair handles GET /api/sentence-pairs/{id}
func (h *Handler) GetSentencePair(w http.ResponseWriter, r *http.Request) {
	pair, ok := requireEntityByID(w, r, h.logger, "sentence pair", func(id int64) (*model.SentencePair, error) {
		return h.svc.GetPair(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, pair)
}

// ReplaceSentencePair handles PUT /api/sentence-pairs/{id}
// Both sentence texts are required. All alignments of the pair are deleted.
func (h *Handler) ReplaceSentencePair(w http.ResponseWriter, r *http.Request) {
	h.updateSentencePair(w, r, false)
}

// PatchSentencePair handles PATCH /api/sentence-pairs/{id}
// Either sentence text may be given. All alignments of the pair are deleted.
func (h *Handler) PatchSentencePair(w http.ResponseWriter, r *http.Request) {
	h.updateSentencePair(w, r, true)
}

func (h *Handler) updateSentencePair(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := requireID(w, r, "sentence pair")
	if !ok {
		return
	}

	var req UpdateSentencePairRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := fieldErrors{}
	if partial {
		errs.optionalText("source_sentence", req.SourceSentence)
		errs.optionalText("target_sentence", req.TargetSentence)
		if req.SourceSentence == nil && req.TargetSentence == nil {
			errs["source_sentence"] = "At least one of source_sentence or target_sentence is required."
		}
	} else {
		errs.requireText("source_sentence", req.SourceSentence)
		errs.requireText("target_sentence", req.TargetSentence)
	}
	if !errs.empty() {
		WriteValidationError(w, errs)
		return
	}

	pair, err := h.svc.UpdatePairText(r.Context(), id, service.UpdatePairTextInput{
		SourceSentence: req.SourceSentence,
		TargetSentence: req.TargetSentence,
	})
	if err != nil {
		writeEntityError(w, r, h.logger, "update", "sentence pair", err)
		return
	}

	WriteSuccess(w, pair)
}

// DeleteSentencePair handles DELETE /api/sentence-pairs/{id}
// Alignments of the pair are deleted with it.
func (h *Handler) DeleteSentencePair(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "sentence pair")
	if !ok {
		return
	}

	if err := h.svc.DeletePair(r.Context(), id); err != nil {
		writeEntityError(w, r, h.logger, "delete", "sentence pair", err)
		return
	}

	WriteNoContent(w)
}
