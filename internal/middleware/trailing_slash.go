// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// TrimTrailingSlash removes trailing slashes from the request path before
// routing, so /api/alignments/3/ is served as /api/alignments/3. Unlike a
// redirect this keeps POST and DELETE bodies intact. The root path "/" is left alone.
func TrimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(path) > 1 && strings.HasSuffix(path, "/") {
			trimmed := strings.TrimRight(path, "/")
			if trimmed == "" {
				trimmed = "/"
			}
			r.URL.Path = trimmed
			if r.URL.RawPath != "" {
				r.URL.RawPath = strings.TrimRight(r.URL.RawPath, "/")
				if r.URL.RawPath == "" {
					r.URL.RawPath = "/"
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
