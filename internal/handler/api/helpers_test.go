// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/wordalign/internal/model"
	"github.com/olegiv/wordalign/internal/service"
	"github.com/olegiv/wordalign/internal/testutil"
)

// testSetup creates a migrated test database and API handler for testing.
func testSetup(t *testing.T) (*sql.DB, *Handler) {
	t.Helper()
	db := testutil.TestDB(t)
	logger := testutil.TestLoggerSilent()
	return db, NewHandler(service.NewAnnotationService(db, logger), logger)
}

// createTestPair creates a sentence pair through the service.
func createTestPair(t *testing.T, h *Handler, src, tgt string) *model.SentencePair {
	t.Helper()
	pair, err := h.svc.CreatePair(context.Background(), service.CreatePairInput{
		SourceSentence: src,
		TargetSentence: tgt,
		SourceLanguage: "en",
		TargetLanguage: "de",
	})
	require.NoError(t, err)
	return pair
}

// createTestAlignment creates an alignment through the service.
func createTestAlignment(t *testing.T, h *Handler, pairID int64, src, tgt model.Indices) *model.Alignment {
	t.Helper()
	a, err := h.svc.CreateAlignment(context.Background(), service.CreateAlignmentInput{
		SentencePairID: pairID,
		SourceIndices:  src,
		TargetIndices:  tgt,
	})
	require.NoError(t, err)
	return a
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path string, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newGetRequest creates an HTTP GET request with optional URL params.
func newGetRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newDeleteRequest creates an HTTP DELETE request with optional URL params.
func newDeleteRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// unmarshalBody unmarshals a JSON response body into the specified type.
func unmarshalBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// executeHandler executes a handler and returns the response recorder.
func executeHandler(t *testing.T, handler func(http.ResponseWriter, *http.Request), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// assertErrorResponse checks status and error code, returning the decoded error.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorDetail {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	resp := unmarshalBody[ErrorResponse](t, w)
	require.Equal(t, code, resp.Error.Code)
	return resp.Error
}

func idParams(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
