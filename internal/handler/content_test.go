// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatcms/flatcms/internal/model"
)

func TestContent_ByPageIsPublic(t *testing.T) {
	app := newTestApp(t)

	var blocks []map[string]any
	resp := app.do(http.MethodGet, "/api/content/page/home", nil, &blocks)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, blocks)
}

func TestContent_ListRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(http.MethodGet, "/api/content", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestContent_CreateValidation(t *testing.T) {
	app := newTestApp(t)
	app.login()

	var body map[string]string
	resp := app.do(http.MethodPost, "/api/content", map[string]string{"page": "home"}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Page and text are required", body["error"])
}

func TestContent_CreateUpdateDelete(t *testing.T) {
	app := newTestApp(t)
	app.login()

	var created map[string]any
	resp := app.do(http.MethodPost, "/api/content", map[string]any{
		"page":     "home",
		"text":     "Welcome to the village",
		"position": 1,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	// Visible on the public page route.
	var blocks []map[string]any
	app.do(http.MethodGet, "/api/content/page/home", nil, &blocks)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Welcome to the village", blocks[0]["text"])

	var updated map[string]any
	resp = app.do(http.MethodPut, "/api/content/"+id, map[string]string{
		"text": "Welcome, traveler",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Welcome, traveler", updated["text"])
	assert.Equal(t, "home", updated["page"])

	var deleted map[string]any
	resp = app.do(http.MethodDelete, "/api/content/"+id, nil, &deleted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Content block deleted", deleted["message"])

	app.do(http.MethodGet, "/api/content/page/home", nil, &blocks)
	assert.Empty(t, blocks)

	entries := app.audit.Recent(3)
	require.Len(t, entries, 3)
	assert.Equal(t, model.ActionBlockDeleted, entries[0].Action)
	assert.Equal(t, model.ActionBlockUpdated, entries[1].Action)
	assert.Equal(t, model.ActionBlockCreated, entries[2].Action)
}

func TestContent_UpdateNotFound(t *testing.T) {
	app := newTestApp(t)
	app.login()

	var body map[string]string
	resp := app.do(http.MethodPut, "/api/content/missing", map[string]string{"text": "x"}, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Content block not found", body["error"])
}
