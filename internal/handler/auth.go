// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/auth"
	"github.com/flatcms/flatcms/internal/middleware"
	"github.com/flatcms/flatcms/internal/model"
)

// AuthHandler handles the authentication API routes.
type AuthHandler struct {
	admin          *auth.Admin
	sessionManager *scs.SessionManager
	audit          *audit.Log
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(admin *auth.Admin, sm *scs.SessionManager, auditLog *audit.Log) *AuthHandler {
	return &AuthHandler{
		admin:          admin,
		sessionManager: sm,
		audit:          auditLog,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. A failed attempt reveals
// nothing about which part of the credential was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.admin.Verify(req.Username, req.Password) {
		slog.Debug("login attempt rejected", "username", req.Username)
		h.audit.Append(model.ActionLoginFailed, model.UserUnknown, map[string]any{"username": req.Username})
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Regenerate the session token to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("session renewal error", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, h.admin.UserID)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUsername, h.admin.Username)

	slog.Info("user logged in", "user_id", h.admin.UserID, "username", h.admin.Username)
	h.audit.Append(model.ActionLoginSuccess, h.admin.UserID, map[string]any{"username": h.admin.Username})

	writeJSONSuccess(w, "Logged in successfully")
}

// Logout handles POST /api/auth/logout. Logging out while anonymous
// is a no-op that still reports success.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(h.sessionManager, r)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	if userID != "" {
		slog.Info("user logged out", "user_id", userID)
		h.audit.Append(model.ActionLogout, userID, map[string]any{})
	}

	writeJSONSuccess(w, "Logged out successfully")
}

// Check handles GET /api/auth/check. It reports session state without
// side effects.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if middleware.UserID(h.sessionManager, r) == "" {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"username":      middleware.Username(h.sessionManager, r),
	})
}
