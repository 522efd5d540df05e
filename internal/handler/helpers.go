// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler holds route constants, request helpers and the operational
// endpoints shared by the API handlers.
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ParseIDParam parses the "id" URL parameter as int64.
func ParseIDParam(r *http.Request) (int64, error) {
	return ParseURLParamInt64(r, URLParamID)
}

// ParseURLParamInt64 parses a named chi URL parameter as int64.
func ParseURLParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s parameter", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter %q: %w", name, raw, err)
	}
	return v, nil
}

// ParseQueryInt64 parses an optional query parameter as int64.
// It returns nil when the parameter is absent.
func ParseQueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s query parameter %q: %w", name, raw, err)
	}
	return &v, nil
}
