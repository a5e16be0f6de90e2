// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repo

import (
	"errors"
	"testing"
	"time"

	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/store"
)

func newEventsRepo(t *testing.T) *Events {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}
	return NewEvents(s)
}

func TestEvents_Create(t *testing.T) {
	r := newEventsRepo(t)

	event, err := r.Create(CreateEventParams{Title: "Launch", Date: "2025-01-01"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if event.ID == "" {
		t.Error("Create returned empty id")
	}
	if event.Archived {
		t.Error("new event must not be archived")
	}
	if event.CreatedAt.IsZero() || !event.CreatedAt.Equal(event.UpdatedAt) {
		t.Errorf("timestamps not stamped: created=%v updated=%v", event.CreatedAt, event.UpdatedAt)
	}

	got, err := r.Get(event.ID)
	if err != nil {
		t.Fatalf("Get after Create error: %v", err)
	}
	if got.Title != "Launch" || got.Date != "2025-01-01" {
		t.Errorf("Get = %+v", got)
	}
}

func TestEvents_CreateGeneratesUniqueIDs(t *testing.T) {
	r := newEventsRepo(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		event, err := r.Create(CreateEventParams{Title: "t", Date: "2025-01-01"})
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if seen[event.ID] {
			t.Fatalf("duplicate id generated: %s", event.ID)
		}
		seen[event.ID] = true
	}
}

func TestEvents_UpdateMergesFields(t *testing.T) {
	r := newEventsRepo(t)

	event, err := r.Create(CreateEventParams{
		Title:    "Launch",
		Date:     "2025-01-01",
		Location: "Main hall",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	time.Sleep(5 * time.Millisecond) // ensure updated_at advances

	title := "Launch party"
	updated, err := r.Update(event.ID, model.EventPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Title != "Launch party" {
		t.Errorf("Title = %q, want %q", updated.Title, "Launch party")
	}
	// Omitted fields keep their prior values.
	if updated.Date != "2025-01-01" || updated.Location != "Main hall" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(event.UpdatedAt) {
		t.Errorf("updated_at not advanced: %v -> %v", event.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(event.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", event.CreatedAt, updated.CreatedAt)
	}

	got, err := r.Get(event.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Title != updated.Title || got.Date != updated.Date {
		t.Errorf("persisted record differs: %+v", got)
	}
}

func TestEvents_UpdateUnknownID(t *testing.T) {
	r := newEventsRepo(t)

	_, err := r.Update("nope", model.EventPatch{})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
}

func TestEvents_Delete(t *testing.T) {
	r := newEventsRepo(t)

	event, err := r.Create(CreateEventParams{Title: "Launch", Date: "2025-01-01"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := r.Delete(event.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := r.Get(event.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	for _, e := range r.List() {
		if e.ID == event.ID {
			t.Errorf("deleted event still listed")
		}
	}

	if err := r.Delete(event.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestEvents_ArchivePartitionsViews(t *testing.T) {
	r := newEventsRepo(t)

	event, err := r.Create(CreateEventParams{Title: "Launch", Date: "2025-01-01"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := r.Archive(event.ID); err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if containsEvent(r.Active(), event.ID) {
		t.Error("archived event still in active view")
	}
	if !containsEvent(r.Archived(), event.ID) {
		t.Error("archived event missing from archived view")
	}

	if _, err := r.Unarchive(event.ID); err != nil {
		t.Fatalf("Unarchive error: %v", err)
	}
	if !containsEvent(r.Active(), event.ID) {
		t.Error("unarchived event missing from active view")
	}
	if containsEvent(r.Archived(), event.ID) {
		t.Error("unarchived event still in archived view")
	}
}

func TestEvents_PersistAcrossRepositories(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}

	event, err := NewEvents(s).Create(CreateEventParams{Title: "Launch", Date: "2025-01-01"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// A fresh store over the same directory sees the record.
	s2, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}
	got, err := NewEvents(s2).Get(event.ID)
	if err != nil {
		t.Fatalf("Get from reopened store error: %v", err)
	}
	if got.Title != "Launch" {
		t.Errorf("reloaded event = %+v", got)
	}
}

func containsEvent(events []model.Event, id string) bool {
	for _, e := range events {
		if e.ID == id {
			return true
		}
	}
	return false
}
