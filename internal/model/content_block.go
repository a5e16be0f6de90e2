// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ContentBlock is an editable fragment of page content. Position
// defines display ordering within a page; (page, position) is not
// required to be unique.
type ContentBlock struct {
	ID        string    `json:"id"`
	Page      string    `json:"page"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl"`
	AltText   string    `json:"altText"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContentBlockPatch carries a partial update. Nil fields leave the
// stored value untouched.
type ContentBlockPatch struct {
	Page     *string `json:"page"`
	Text     *string `json:"text"`
	ImageURL *string `json:"imageUrl"`
	AltText  *string `json:"altText"`
	Position *int    `json:"position"`
}

// Apply overlays the patch onto b and returns whether anything was set.
func (p ContentBlockPatch) Apply(b *ContentBlock) bool {
	changed := false
	if p.Page != nil {
		b.Page = *p.Page
		changed = true
	}
	if p.Text != nil {
		b.Text = *p.Text
		changed = true
	}
	if p.ImageURL != nil {
		b.ImageURL = *p.ImageURL
		changed = true
	}
	if p.AltText != nil {
		b.AltText = *p.AltText
		changed = true
	}
	if p.Position != nil {
		b.Position = *p.Position
		changed = true
	}
	return changed
}
