// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/olegiv/wordalign/internal/handler"
	"github.com/olegiv/wordalign/internal/model"
	"github.com/olegiv/wordalign/internal/service"
)

// CreateAlignmentRequest represents the request body for creating an alignment.
type CreateAlignmentRequest struct {
	SentencePairID *int64        `json:"sentence_pair_id"`
	SourceIndices  model.Indices `json:"source_indices"`
	TargetIndices  model.Indices `json:"target_indices"`
}

// UpdateAlignmentRequest represents the request body for updating an alignment.
// The owning sentence pair cannot be changed.
type UpdateAlignmentRequest struct {
	SourceIndices model.Indices `json:"source_indices"`
	TargetIndices model.Indices `json:"target_indices"`
}

// ListAlignments handles GET /api/alignments
// Optional query parameter: sentence_pair_id
func (h *Handler) ListAlignments(w http.ResponseWriter, r *http.Request) {
	pairID, err := handler.ParseQueryInt64(r, handler.QueryParamSentencePairID)
	if err != nil {
		WriteBadRequest(w, "Invalid sentence_pair_id", nil)
		return
	}

	alignments, err := h.svc.ListAlignments(r.Context(), service.AlignmentFilter{SentencePairID: pairID})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list alignments", "error", err)
		WriteInternalError(w, "Failed to list alignments")
		return
	}
	WriteSuccess(w, alignments)
}

// CreateAlignment handles POST /api/alignments
func (h *Handler) CreateAlignment(w http.ResponseWriter, r *http.Request) {
	var req CreateAlignmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := fieldErrors{}
	if req.SentencePairID == nil {
		errs["sentence_pair_id"] = msgRequired
	}
	errs.requireIndices("source_indices", req.SourceIndices)
	errs.requireIndices("target_indices", req.TargetIndices)
	if !errs.empty() {
		WriteValidationError(w, errs)
		return
	}

	alignment, err := h.svc.CreateAlignment(r.Context(), service.CreateAlignmentInput{
		SentencePairID: *req.SentencePairID,
		SourceIndices:  req.SourceIndices,
		TargetIndices:  req.TargetIndices,
	})
	if err != nil {
		if errors.Is(err, service.ErrSentencePairNotFound) {
			WriteValidationError(w, map[string]string{
				"sentence_pair_id": fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, *req.SentencePairID),
			})
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to create alignment", "error", err)
		WriteInternalError(w, "Failed to create alignment")
		return
	}

	WriteCreated(w, alignment)
}

// GetAlignment handles GET /api/alignments/{id}
func (h *Handler) GetAlignment(w http.ResponseWriter, r *http.Request) {
	alignment, ok := requireEntityByID(w, r, h.logger, "alignment", func(id int64) (*model.Alignment, error) {
		return h.svc.GetAlignment(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, alignment)
}

// ReplaceAlignment handles PUT /api/alignments/{id}
func (h *Handler) ReplaceAlignment(w http.ResponseWriter, r *http.Request) {
	h.updateAlignment(w, r, false)
}

// PatchAlignment handles PATCH /api/alignments/{id}
func (h *Handler) PatchAlignment(w http.ResponseWriter, r *http.Request) {
	h.updateAlignment(w, r, true)
}

func (h *Handler) updateAlignment(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := requireID(w, r, "alignment")
	if !ok {
		return
	}

	var req UpdateAlignmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !partial {
		errs := fieldErrors{}
		errs.requireIndices("source_indices", req.SourceIndices)
		errs.requireIndices("target_indices", req.TargetIndices)
		if !errs.empty() {
			WriteValidationError(w, errs)
			return
		}
	}

	alignment, err := h.svc.UpdateAlignment(r.Context(), id, service.UpdateAlignmentInput{
		SourceIndices: req.SourceIndices,
		TargetIndices: req.TargetIndices,
	})
	if err != nil {
		writeEntityError(w, r, h.logger, "update", "alignment", err)
		return
	}

	WriteSuccess(w, alignment)
}

// DeleteAlignment handles DELETE /api/alignments/{id}
func (h *Handler) DeleteAlignment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "alignment")
	if !ok {
		return
	}

	if err := h.svc.DeleteAlignment(r.Context(), id); err != nil {
		writeEntityError(w, r, h.logger, "delete", "alignment", err)
		return
	}

	WriteNoContent(w)
}

// ResetAlignments handles DELETE /api/alignments/reset-all
// Every alignment of every pair is deleted. The count is reported in X-Deleted-Count.
func (h *Handler) ResetAlignments(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.ResetAlignments(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to reset alignments", "error", err)
		WriteInternalError(w, "Failed to reset alignments")
		return
	}

	w.Header().Set(handler.HeaderDeletedCount, strconv.FormatInt(deleted, 10))
	WriteNoContent(w)
}
