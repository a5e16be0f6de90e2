// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/middleware"
	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/repo"
)

// EventsHandler handles the events API routes. Reads are public;
// mutations sit behind the authentication gate.
type EventsHandler struct {
	events         *repo.Events
	sessionManager *scs.SessionManager
	audit          *audit.Log
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events *repo.Events, sm *scs.SessionManager, auditLog *audit.Log) *EventsHandler {
	return &EventsHandler{
		events:         events,
		sessionManager: sm,
		audit:          auditLog,
	}
}

// List handles GET /api/events: active (unarchived) events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.events.Active())
}

// ListArchived handles GET /api/events/archived.
func (h *EventsHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.events.Archived())
}

// Get handles GET /api/events/{id}.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	ImageURL    string `json:"imageUrl"`
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Date == "" {
		writeJSONError(w, http.StatusBadRequest, "Title and date are required")
		return
	}

	event, err := h.events.Create(repo.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	h.audit.Append(model.ActionEventCreated, middleware.UserID(h.sessionManager, r), map[string]any{
		"eventId": event.ID,
		"title":   event.Title,
	})
	writeJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/events/{id}.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.EventPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.events.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeRepoError(w, err, "Event not found")
		return
	}

	h.audit.Append(model.ActionEventUpdated, middleware.UserID(h.sessionManager, r), map[string]any{
		"eventId": event.ID,
		"title":   event.Title,
	})
	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, err := h.events.Get(id)
	if err != nil {
		writeRepoError(w, err, "Event not found")
		return
	}
	if err := h.events.Delete(id); err != nil {
		writeRepoError(w, err, "Event not found")
		return
	}

	h.audit.Append(model.ActionEventDeleted, middleware.UserID(h.sessionManager, r), map[string]any{
		"eventId": id,
		"title":   event.Title,
	})
	writeJSONSuccess(w, "Event deleted")
}

// Archive handles POST /api/events/{id}/archive.
func (h *EventsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

// Unarchive handles POST /api/events/{id}/unarchive.
func (h *EventsHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *EventsHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	id := chi.URLParam(r, "id")

	var event model.Event
	var err error
	if archived {
		event, err = h.events.Archive(id)
	} else {
		event, err = h.events.Unarchive(id)
	}
	if err != nil {
		writeRepoError(w, err, "Event not found")
		return
	}

	action := model.ActionEventArchived
	if !archived {
		action = model.ActionEventUnarchived
	}
	h.audit.Append(action, middleware.UserID(h.sessionManager, r), map[string]any{
		"eventId": event.ID,
		"title":   event.Title,
	})
	writeJSON(w, http.StatusOK, event)
}

// writeRepoError maps repository errors onto API responses.
func writeRepoError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, model.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	writeJSONError(w, http.StatusInternalServerError, "Internal server error")
}
