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
	"github.com/flatcms/flatcms/internal/repo"
)

// ContentHandler handles the content block API routes.
type ContentHandler struct {
	blocks         *repo.ContentBlocks
	sessionManager *scs.SessionManager
	audit          *audit.Log
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(blocks *repo.ContentBlocks, sm *scs.SessionManager, auditLog *audit.Log) *ContentHandler {
	return &ContentHandler{
		blocks:         blocks,
		sessionManager: sm,
		audit:          auditLog,
	}
}

// ByPage handles GET /api/content/page/{page} (public).
func (h *ContentHandler) ByPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.blocks.ByPage(chi.URLParam(r, "page")))
}

// List handles GET /api/content (admin).
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.blocks.List())
}

type createContentBlockRequest struct {
	Page     string `json:"page"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
	Position int    `json:"position"`
}

// Create handles POST /api/content.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContentBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Page == "" || req.Text == "" {
		writeJSONError(w, http.StatusBadRequest, "Page and text are required")
		return
	}

	block, err := h.blocks.Create(repo.CreateContentBlockParams{
		Page:     req.Page,
		Text:     req.Text,
		ImageURL: req.ImageURL,
		AltText:  req.AltText,
		Position: req.Position,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create content block")
		return
	}

	h.audit.Append(model.ActionBlockCreated, middleware.UserID(h.sessionManager, r), map[string]any{
		"blockId": block.ID,
		"page":    block.Page,
	})
	writeJSON(w, http.StatusCreated, block)
}

// Update handles PUT /api/content/{id}.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ContentBlockPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	block, err := h.blocks.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeRepoError(w, err, "Content block not found")
		return
	}

	h.audit.Append(model.ActionBlockUpdated, middleware.UserID(h.sessionManager, r), map[string]any{
		"blockId": block.ID,
		"page":    block.Page,
	})
	writeJSON(w, http.StatusOK, block)
}

// Delete handles DELETE /api/content/{id}.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	block, err := h.blocks.Get(id)
	if err != nil {
		writeRepoError(w, err, "Content block not found")
		return
	}
	if err := h.blocks.Delete(id); err != nil {
		writeRepoError(w, err, "Content block not found")
		return
	}

	h.audit.Append(model.ActionBlockDeleted, middleware.UserID(h.sessionManager, r), map[string]any{
		"blockId": id,
		"page":    block.Page,
	})
	writeJSONSuccess(w, "Content block deleted")
}
