// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/middleware"
	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/statictext"
)

// previewLength bounds the value excerpt mirrored into the audit log.
const previewLength = 100

// TextsHandler handles the static text API routes.
type TextsHandler struct {
	texts          *statictext.Store
	sessionManager *scs.SessionManager
	audit          *audit.Log
}

// NewTextsHandler creates a new TextsHandler.
func NewTextsHandler(texts *statictext.Store, sm *scs.SessionManager, auditLog *audit.Log) *TextsHandler {
	return &TextsHandler{
		texts:          texts,
		sessionManager: sm,
		audit:          auditLog,
	}
}

// All handles GET /api/texts (public): the full mapping, as consumed
// by the placeholder renderer.
func (h *TextsHandler) All(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.texts.All())
}

// Get handles GET /api/texts/{key} (public).
func (h *TextsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, ok := h.texts.Get(key)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Static text not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

type setTextRequest struct {
	Value string `json:"value"`
}

// Set handles PUT /api/texts/{key} (admin). Every update is mirrored
// into the audit log with a truncated preview of the new value.
func (h *TextsHandler) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req setTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.texts.Set(key, req.Value); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save static text")
		return
	}

	h.audit.Append(model.ActionStaticTextUpdated, middleware.UserID(h.sessionManager, r), map[string]any{
		"key":     key,
		"preview": preview(req.Value),
	})
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}

// preview truncates a value to previewLength characters for the audit
// trail, so a large rich-text update cannot bloat log entries.
func preview(value string) string {
	runes := []rune(value)
	if len(runes) <= previewLength {
		return value
	}
	return string(runes[:previewLength])
}
