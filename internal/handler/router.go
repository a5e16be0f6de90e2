// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/auth"
	"github.com/flatcms/flatcms/internal/middleware"
	"github.com/flatcms/flatcms/internal/repo"
	"github.com/flatcms/flatcms/internal/statictext"
)

// RouterConfig bundles the dependencies of the full route table.
type RouterConfig struct {
	SessionManager  *scs.SessionManager
	Admin           *auth.Admin
	Events          *repo.Events
	Blocks          *repo.ContentBlocks
	Audit           *audit.Log
	Texts           *statictext.Store
	PublicDir       string
	LoginProtection *middleware.LoginProtection
}

// NewRouter assembles the application router: public reads, the
// session-gated mutating API, and the static HTML pages.
func NewRouter(cfg RouterConfig) chi.Router {
	authHandler := NewAuthHandler(cfg.Admin, cfg.SessionManager, cfg.Audit)
	eventsHandler := NewEventsHandler(cfg.Events, cfg.SessionManager, cfg.Audit)
	contentHandler := NewContentHandler(cfg.Blocks, cfg.SessionManager, cfg.Audit)
	logsHandler := NewLogsHandler(cfg.Audit)
	textsHandler := NewTextsHandler(cfg.Texts, cfg.SessionManager, cfg.Audit)
	pagesHandler := NewPagesHandler(cfg.PublicDir, cfg.SessionManager)

	requireAuth := middleware.RequireAuth(cfg.SessionManager)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(cfg.SessionManager.LoadAndSave)

	r.Route("/api/auth", func(r chi.Router) {
		if cfg.LoginProtection != nil {
			r.With(cfg.LoginProtection.Middleware()).Post("/login", authHandler.Login)
		} else {
			r.Post("/login", authHandler.Login)
		}
		r.Post("/logout", authHandler.Logout)
		r.Get("/check", authHandler.Check)
	})

	r.Route("/api/events", func(r chi.Router) {
		// Public reads.
		r.Get("/", eventsHandler.List)
		r.Get("/archived", eventsHandler.ListArchived)
		r.Get("/{id}", eventsHandler.Get)

		// Admin mutations.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", eventsHandler.Create)
			r.Put("/{id}", eventsHandler.Update)
			r.Delete("/{id}", eventsHandler.Delete)
			r.Post("/{id}/archive", eventsHandler.Archive)
			r.Post("/{id}/unarchive", eventsHandler.Unarchive)
		})
	})

	r.Route("/api/content", func(r chi.Router) {
		r.Get("/page/{page}", contentHandler.ByPage)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", contentHandler.List)
			r.Post("/", contentHandler.Create)
			r.Put("/{id}", contentHandler.Update)
			r.Delete("/{id}", contentHandler.Delete)
		})
	})

	r.With(requireAuth).Get("/api/logs", logsHandler.List)

	r.Route("/api/texts", func(r chi.Router) {
		r.Get("/", textsHandler.All)
		r.Get("/{key}", textsHandler.Get)
		r.With(requireAuth).Put("/{key}", textsHandler.Set)
	})

	// HTML pages.
	r.Get("/", pagesHandler.Home)
	r.Get("/login", pagesHandler.Login)
	r.With(middleware.RequirePage(cfg.SessionManager)).Get("/dashboard", pagesHandler.Dashboard)
	r.Get("/archive", pagesHandler.Archive)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		pagesHandler.Fallback(w, req)
	})

	return r
}
