// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package statictext holds the key→value mapping that feeds page
// placeholders. The mapping is loaded eagerly at startup and kept in
// memory; Set persists the whole mapping immediately, and an fsnotify
// watcher reloads it after out-of-band edits. In-memory state may
// briefly diverge from the file while a reload is debounced; this is
// an eventual-consistency contract, not strict consistency.
package statictext

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/flatcms/flatcms/internal/store"
)

// Collection is the record store file backing the mapping.
const Collection = "staticTexts"

// DebounceDelay is how long the watcher waits after the last file
// event before reloading, so editors that write in several syscalls
// trigger a single reload.
const DebounceDelay = 100 * time.Millisecond

// Store is the in-memory static text mapping over its backing file.
type Store struct {
	store *store.Store

	mu    sync.RWMutex
	texts map[string]string

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// Open loads the mapping from disk, creating an empty file when
// missing.
func Open(s *store.Store) *Store {
	return &Store{
		store: s,
		texts: store.LoadMap(s, Collection),
	}
}

// Get returns the value for key and whether it exists.
func (st *Store) Get(key string) (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	v, ok := st.texts[key]
	return v, ok
}

// All returns a snapshot of the whole mapping.
func (st *Store) All() map[string]string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[string]string, len(st.texts))
	for k, v := range st.texts {
		out[k] = v
	}
	return out
}

// Set stores the value and persists the full mapping immediately.
func (st *Store) Set(key, value string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.texts[key] = value

	snapshot := make(map[string]string, len(st.texts))
	for k, v := range st.texts {
		snapshot[k] = v
	}
	return store.SaveMap(st.store, Collection, snapshot)
}

// Reload replaces the in-memory mapping with the file contents. The
// swap is atomic from a reader's point of view: Get never observes a
// partially loaded mapping.
func (st *Store) Reload() {
	texts := store.LoadMap(st.store, Collection)
	st.mu.Lock()
	st.texts = texts
	st.mu.Unlock()
	slog.Info("static texts reloaded", "keys", len(texts))
}

// Watch reloads the mapping whenever the backing file changes on
// disk, debounced by DebounceDelay. It blocks until ctx is cancelled
// and is meant to run in its own goroutine.
func (st *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Warn("closing static text watcher", "error", err)
		}
	}()

	// Watch the directory rather than the file: saves go through a
	// temp-file rename, which replaces the watched inode.
	if err := watcher.Add(st.store.Dir()); err != nil {
		return err
	}

	target := st.store.Path(Collection)
	for {
		select {
		case <-ctx.Done():
			st.stopDebounce()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			st.scheduleReload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("static text watcher error", "error", err)
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer.
func (st *Store) scheduleReload() {
	st.debounceMu.Lock()
	defer st.debounceMu.Unlock()
	if st.debounce != nil {
		st.debounce.Stop()
	}
	st.debounce = time.AfterFunc(DebounceDelay, st.Reload)
}

func (st *Store) stopDebounce() {
	st.debounceMu.Lock()
	defer st.debounceMu.Unlock()
	if st.debounce != nil {
		st.debounce.Stop()
	}
}
