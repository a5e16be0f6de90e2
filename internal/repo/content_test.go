// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repo

import (
	"errors"
	"testing"

	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/store"
)

func newBlocksRepo(t *testing.T) *ContentBlocks {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}
	return NewContentBlocks(s)
}

func TestContentBlocks_CreateAndByPage(t *testing.T) {
	r := newBlocksRepo(t)

	home1, err := r.Create(CreateContentBlockParams{Page: "home", Text: "Hello", Position: 1})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := r.Create(CreateContentBlockParams{Page: "home", Text: "World", Position: 2}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := r.Create(CreateContentBlockParams{Page: "about", Text: "Us"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	home := r.ByPage("home")
	if len(home) != 2 {
		t.Fatalf("ByPage(home) = %d blocks, want 2", len(home))
	}
	if len(r.ByPage("missing")) != 0 {
		t.Error("ByPage on unknown page should be empty")
	}
	if len(r.List()) != 3 {
		t.Errorf("List = %d blocks, want 3", len(r.List()))
	}

	got, err := r.Get(home1.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Text != "Hello" || got.Position != 1 {
		t.Errorf("Get = %+v", got)
	}
}

func TestContentBlocks_Update(t *testing.T) {
	r := newBlocksRepo(t)

	block, err := r.Create(CreateContentBlockParams{Page: "home", Text: "Hello", AltText: "greeting"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	text := "Welcome"
	position := 5
	updated, err := r.Update(block.ID, model.ContentBlockPatch{Text: &text, Position: &position})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Text != "Welcome" || updated.Position != 5 {
		t.Errorf("Update = %+v", updated)
	}
	if updated.Page != "home" || updated.AltText != "greeting" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestContentBlocks_NotFound(t *testing.T) {
	r := newBlocksRepo(t)

	if _, err := r.Get("nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
	if _, err := r.Update("nope", model.ContentBlockPatch{}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
	if err := r.Delete("nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestContentBlocks_Delete(t *testing.T) {
	r := newBlocksRepo(t)

	block, err := r.Create(CreateContentBlockParams{Page: "home", Text: "Hello"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := r.Delete(block.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := r.Get(block.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}
