// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides REST API handlers for sentence pairs and alignments.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/wordalign/internal/handler"
	"github.com/olegiv/wordalign/internal/service"
)

// maxBodyBytes limits the size of JSON request bodies.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc    *service.AnnotationService
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc *service.AnnotationService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// Routes registers the API endpoints on r. Mount the router at /api.
func (h *Handler) Routes(r chi.Router) {
	r.Get(handler.RouteRoot, h.Root)

	r.Route(handler.RouteSentencePairs, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.ListSentencePairs)
		r.Post(handler.RouteRoot, h.CreateSentencePair)
		r.Get(handler.RouteParamID, h.GetSentencePair)
		r.Put(handler.RouteParamID, h.ReplaceSentencePair)
		r.Patch(handler.RouteParamID, h.PatchSentencePair)
		r.Delete(handler.RouteParamID, h.DeleteSentencePair)
	})

	r.Route(handler.RouteAlignments, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.ListAlignments)
		r.Post(handler.RouteRoot, h.CreateAlignment)
		r.Delete(handler.RouteSuffixResetAll, h.ResetAlignments)
		r.Get(handler.RouteParamID, h.GetAlignment)
		r.Put(handler.RouteParamID, h.ReplaceAlignment)
		r.Patch(handler.RouteParamID, h.PatchAlignment)
		r.Delete(handler.RouteParamID, h.DeleteAlignment)
	})
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 OK JSON response with data as the whole body.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	WriteJSON(w, statusCode, resp)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// Root handles GET /api and lists the resource collections.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r) + handler.RouteAPI
	WriteSuccess(w, map[string]string{
		"sentence-pairs": base + handler.RouteSentencePairs + "/",
		"alignments":     base + handler.RouteAlignments + "/",
	})
}

// requestBaseURL returns scheme://host of the incoming request.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if error (response written).
// The entityName is used for error messages (e.g., "sentence pair", "alignment").
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, ok := requireID(w, r, entityName)
	if !ok {
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		writeEntityError(w, r, logger, "retrieve", entityName, err)
		return zero, false
	}

	return entity, true
}

// requireID parses the id URL parameter, writing a 400 on failure.
func requireID(w http.ResponseWriter, r *http.Request, entityName string) (int64, bool) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return 0, false
	}
	return id, true
}

// writeEntityError maps sql.ErrNoRows to 404 and anything else to a logged 500.
func writeEntityError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, action, entityName string, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		return
	}
	logger.ErrorContext(r.Context(), "failed to "+action+" "+entityName, "error", err)
	WriteInternalError(w, "Failed to "+action+" "+entityName)
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
// Type mismatches on known fields are reported as validation errors instead.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		field, _, _ := strings.Cut(typeErr.Field, ".")
		WriteValidationError(w, map[string]string{field: "Invalid value type"})
	case errors.As(err, &maxErr):
		WriteError(w, http.StatusRequestEntityTooLarge, "request_too_large", "Request body too large", nil)
	case errors.Is(err, io.EOF):
		WriteBadRequest(w, "Request body is empty", nil)
	default:
		WriteBadRequest(w, "Invalid JSON body", nil)
	}
	return false
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
