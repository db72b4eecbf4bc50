// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminTokenHeader is the alternative header for the admin token, for
// clients that cannot set Authorization.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken extracts the admin token from "Authorization: Bearer <token>"
// or the X-Admin-Token header. Returns "" when neither is present.
func AdminToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(AdminTokenHeader))
}

// RequireAdmin guards write endpoints with a single shared token checked
// against a bcrypt hash. An empty hash disables the check, which Load
// only allows outside production.
func RequireAdmin(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			slog.Warn("admin token hash not configured, write endpoints are open")
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := AdminToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="themeforge"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
				slog.Warn("admin token rejected", "path", r.URL.Path, "remote", clientIP(r))
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
