// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package repo provides the typed CRUD repositories built on top of
// the flat-file record store. Each repository owns one collection.
package repo

import (
	"time"

	"github.com/google/uuid"

	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/store"
)

// CollectionEvents is the record store collection backing Events.
const CollectionEvents = "events"

// Events is the repository for the events collection.
type Events struct {
	store *store.Store
}

// NewEvents creates the events repository.
func NewEvents(s *store.Store) *Events {
	return &Events{store: s}
}

// List returns every event, archived or not.
func (r *Events) List() []model.Event {
	return store.Load[model.Event](r.store, CollectionEvents)
}

// Active returns events that are not archived.
func (r *Events) Active() []model.Event {
	return r.filter(false)
}

// Archived returns archived events.
func (r *Events) Archived() []model.Event {
	return r.filter(true)
}

func (r *Events) filter(archived bool) []model.Event {
	events := r.List()
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Archived == archived {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the event with the given id, or model.ErrNotFound.
func (r *Events) Get(id string) (model.Event, error) {
	for _, e := range r.List() {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, model.ErrNotFound
}

// CreateEventParams are the caller-supplied fields for a new event.
// Mandatory-field validation (title, date) happens at the HTTP
// boundary, not here.
type CreateEventParams struct {
	Title       string
	Description string
	Date        string
	Location    string
	ImageURL    string
}

// Create appends a new event with a fresh id and timestamps.
func (r *Events) Create(p CreateEventParams) (model.Event, error) {
	now := time.Now().UTC()
	event := model.Event{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		Location:    p.Location,
		ImageURL:    p.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
		Archived:    false,
	}

	err := store.Update(r.store, CollectionEvents, func(events []model.Event) ([]model.Event, error) {
		return append(events, event), nil
	})
	if err != nil {
		return model.Event{}, err
	}
	return event, nil
}

// Update overlays the patch onto the stored event and refreshes
// updated_at. Returns model.ErrNotFound for an unknown id.
func (r *Events) Update(id string, patch model.EventPatch) (model.Event, error) {
	var updated model.Event
	err := store.Update(r.store, CollectionEvents, func(events []model.Event) ([]model.Event, error) {
		for i := range events {
			if events[i].ID == id {
				patch.Apply(&events[i])
				events[i].UpdatedAt = time.Now().UTC()
				updated = events[i]
				return events, nil
			}
		}
		return nil, model.ErrNotFound
	})
	if err != nil {
		return model.Event{}, err
	}
	return updated, nil
}

// Delete removes the event with the given id. Returns
// model.ErrNotFound when no such event exists.
func (r *Events) Delete(id string) error {
	return store.Update(r.store, CollectionEvents, func(events []model.Event) ([]model.Event, error) {
		filtered := make([]model.Event, 0, len(events))
		found := false
		for _, e := range events {
			if e.ID == id {
				found = true
				continue
			}
			filtered = append(filtered, e)
		}
		if !found {
			return nil, model.ErrNotFound
		}
		return filtered, nil
	})
}

// Archive marks the event archived.
func (r *Events) Archive(id string) (model.Event, error) {
	archived := true
	return r.Update(id, model.EventPatch{Archived: &archived})
}

// Unarchive clears the archived flag.
func (r *Events) Unarchive(id string) (model.Event, error) {
	archived := false
	return r.Update(id, model.EventPatch{Archived: &archived})
}
