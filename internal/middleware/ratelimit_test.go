// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGlobalRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewGlobalRateLimiter(0.001, 2)
	handler := rl.Middleware()(okHandler())

	for i := range 2 {
		req := httptest.NewRequest(http.MethodGet, "/api/alignments", nil)
		req.RemoteAddr = "192.0.2.10:4321"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rr.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/alignments", nil)
	req.RemoteAddr = "192.0.2.10:4322"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}

	var apiErr errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if apiErr.Error.Code != "rate_limit_exceeded" {
		t.Errorf("error code = %q, want rate_limit_exceeded", apiErr.Error.Code)
	}
}

func TestGlobalRateLimiter_SeparateClients(t *testing.T) {
	rl := NewGlobalRateLimiter(0.001, 1)
	handler := rl.Middleware()(okHandler())

	for _, addr := range []string{"192.0.2.1:1000", "192.0.2.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("client %s: status = %d, want %d", addr, rr.Code, http.StatusOK)
		}
	}
}

func TestLimiterCache_ClearsWhenFull(t *testing.T) {
	lc := newLimiterCache[string](1, 1, 2)

	first := lc.get("a")
	if lc.get("a") != first {
		t.Error("get should return the cached limiter")
	}
	lc.get("b")
	if len(lc.limiters) != 2 {
		t.Fatalf("size = %d, want 2", len(lc.limiters))
	}

	lc.get("c")
	if len(lc.limiters) != 1 {
		t.Errorf("size = %d after overflow, want 1", len(lc.limiters))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:5555", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"203.0.113.7", "203.0.113.7"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if got := getClientIP(req); got != tt.want {
			t.Errorf("getClientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}
