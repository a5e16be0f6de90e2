// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/flatcms/flatcms/internal/middleware"
)

// PagesHandler serves the static HTML pages from the public
// directory. Templating is done client-side; the server only decides
// which file to send based on login state.
type PagesHandler struct {
	publicDir      string
	sessionManager *scs.SessionManager
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(publicDir string, sm *scs.SessionManager) *PagesHandler {
	return &PagesHandler{
		publicDir:      publicDir,
		sessionManager: sm,
	}
}

// Home handles GET /.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "index.html")
}

// Login handles GET /login; an authenticated visitor goes straight to
// the dashboard.
func (h *PagesHandler) Login(w http.ResponseWriter, r *http.Request) {
	if middleware.UserID(h.sessionManager, r) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.serve(w, r, "login.html")
}

// Dashboard handles GET /dashboard; the router guards it with the
// page-level auth redirect.
func (h *PagesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "dashboard.html")
}

// Archive handles GET /archive (public).
func (h *PagesHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "archive.html")
}

// Fallback serves remaining assets (CSS, JS, images) from the public
// directory, falling back to the 404 page. Paths are cleaned and
// verified to stay inside the public directory.
func (h *PagesHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	clean := filepath.Clean("/" + r.URL.Path)
	target := filepath.Join(h.publicDir, clean)

	// Containment check against the resolved public dir.
	absPublic, err := filepath.Abs(h.publicDir)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	rel, err := filepath.Rel(absPublic, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") {
		h.NotFound(w, r)
		return
	}

	info, err := os.Stat(absTarget)
	if err != nil || info.IsDir() {
		h.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, absTarget)
}

// NotFound serves the 404 page for unmatched routes.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(filepath.Join(h.publicDir, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}

func (h *PagesHandler) serve(w http.ResponseWriter, r *http.Request, name string) {
	http.ServeFile(w, r, filepath.Join(h.publicDir, name))
}
