// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event is a site event shown on the public calendar. Archived events
// are hidden from the default listing but remain queryable.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Archived    bool      `json:"archived"`
}

// EventPatch carries a partial update. Nil fields leave the stored
// value untouched.
type EventPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"imageUrl"`
	Archived    *bool   `json:"archived"`
}

// Apply overlays the patch onto e and returns whether anything was set.
func (p EventPatch) Apply(e *Event) bool {
	changed := false
	if p.Title != nil {
		e.Title = *p.Title
		changed = true
	}
	if p.Description != nil {
		e.Description = *p.Description
		changed = true
	}
	if p.Date != nil {
		e.Date = *p.Date
		changed = true
	}
	if p.Location != nil {
		e.Location = *p.Location
		changed = true
	}
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
		changed = true
	}
	if p.Archived != nil {
		e.Archived = *p.Archived
		changed = true
	}
	return changed
}
