// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and login abuse protection.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// Session keys for the authenticated identity.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
)

// RequireAuth creates middleware that gates mutating API operations.
// Requests without an authenticated session are rejected with a 401
// JSON body; an authorization failure is never reported as not-found.
func RequireAuth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetString(r.Context(), SessionKeyUserID) == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePage creates middleware for HTML pages: unauthenticated
// visitors are redirected to the login page instead of getting a 401.
func RequirePage(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetString(r.Context(), SessionKeyUserID) == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID returns the session's user id, or "" when anonymous.
func UserID(sm *scs.SessionManager, r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyUserID)
}

// Username returns the session's username, or "" when anonymous.
func Username(sm *scs.SessionManager, r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyUsername)
}
