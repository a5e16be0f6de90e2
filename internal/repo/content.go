// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repo

import (
	"time"

	"github.com/google/uuid"

	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/store"
)

// CollectionContentBlocks is the record store collection backing
// ContentBlocks.
const CollectionContentBlocks = "contentBlocks"

// ContentBlocks is the repository for the content blocks collection.
type ContentBlocks struct {
	store *store.Store
}

// NewContentBlocks creates the content blocks repository.
func NewContentBlocks(s *store.Store) *ContentBlocks {
	return &ContentBlocks{store: s}
}

// List returns every content block.
func (r *ContentBlocks) List() []model.ContentBlock {
	return store.Load[model.ContentBlock](r.store, CollectionContentBlocks)
}

// ByPage returns the blocks belonging to the given page.
func (r *ContentBlocks) ByPage(page string) []model.ContentBlock {
	blocks := r.List()
	out := make([]model.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Page == page {
			out = append(out, b)
		}
	}
	return out
}

// Get returns the block with the given id, or model.ErrNotFound.
func (r *ContentBlocks) Get(id string) (model.ContentBlock, error) {
	for _, b := range r.List() {
		if b.ID == id {
			return b, nil
		}
	}
	return model.ContentBlock{}, model.ErrNotFound
}

// CreateContentBlockParams are the caller-supplied fields for a new
// block. Mandatory-field validation (page, text) happens at the HTTP
// boundary.
type CreateContentBlockParams struct {
	Page     string
	Text     string
	ImageURL string
	AltText  string
	Position int
}

// Create appends a new content block with a fresh id and timestamps.
func (r *ContentBlocks) Create(p CreateContentBlockParams) (model.ContentBlock, error) {
	now := time.Now().UTC()
	block := model.ContentBlock{
		ID:        uuid.NewString(),
		Page:      p.Page,
		Text:      p.Text,
		ImageURL:  p.ImageURL,
		AltText:   p.AltText,
		Position:  p.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := store.Update(r.store, CollectionContentBlocks, func(blocks []model.ContentBlock) ([]model.ContentBlock, error) {
		return append(blocks, block), nil
	})
	if err != nil {
		return model.ContentBlock{}, err
	}
	return block, nil
}

// Update overlays the patch onto the stored block and refreshes
// updated_at. Returns model.ErrNotFound for an unknown id.
func (r *ContentBlocks) Update(id string, patch model.ContentBlockPatch) (model.ContentBlock, error) {
	var updated model.ContentBlock
	err := store.Update(r.store, CollectionContentBlocks, func(blocks []model.ContentBlock) ([]model.ContentBlock, error) {
		for i := range blocks {
			if blocks[i].ID == id {
				patch.Apply(&blocks[i])
				blocks[i].UpdatedAt = time.Now().UTC()
				updated = blocks[i]
				return blocks, nil
			}
		}
		return nil, model.ErrNotFound
	})
	if err != nil {
		return model.ContentBlock{}, err
	}
	return updated, nil
}

// Delete removes the block with the given id. Returns
// model.ErrNotFound when no such block exists.
func (r *ContentBlocks) Delete(id string) error {
	return store.Update(r.store, CollectionContentBlocks, func(blocks []model.ContentBlock) ([]model.ContentBlock, error) {
		filtered := make([]model.ContentBlock, 0, len(blocks))
		found := false
		for _, b := range blocks {
			if b.ID == id {
				found = true
				continue
			}
			filtered = append(filtered, b)
		}
		if !found {
			return nil, model.ErrNotFound
		}
		return filtered, nil
	})
}
