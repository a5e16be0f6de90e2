// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package audit maintains the append-only log of administrative
// actions. Writes are best-effort: a failed append is logged and
// swallowed so auditing can never fail the operation it records.
package audit

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/store"
)

// Collection is the record store collection backing the audit log.
const Collection = "logs"

// DefaultRecentLimit matches the original API default page size.
const DefaultRecentLimit = 100

// Log appends and queries audit entries.
type Log struct {
	store *store.Store
}

// New creates the audit log over the given store.
func New(s *store.Store) *Log {
	return &Log{store: s}
}

// Append records an administrative action. userID is the acting
// session identity, or model.UserUnknown when none is available.
// Persistence failures are logged, never returned.
func (l *Log) Append(action, userID string, details map[string]any) {
	if userID == "" {
		userID = model.UserUnknown
	}
	if details == nil {
		details = map[string]any{}
	}
	entry := model.LogEntry{
		ID:        uuid.NewString(),
		Action:    action,
		UserID:    userID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	err := store.Update(l.store, Collection, func(entries []model.LogEntry) ([]model.LogEntry, error) {
		return append(entries, entry), nil
	})
	// Plain log, not slog: the slog pipeline mirrors warnings back
	// into this package and must not be re-entered on failure.
	if err != nil {
		log.Printf("audit append failed (action=%s): %v", action, err)
	}
}

// Recent returns the last limit entries, most recent first. A limit
// of zero or less falls back to DefaultRecentLimit.
func (l *Log) Recent(limit int) []model.LogEntry {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	entries := store.Load[model.LogEntry](l.store, Collection)
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	// Reverse in place: the file is append-ordered, oldest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// Prune drops entries older than the cutoff and reports how many were
// removed. Used by the retention job; request handling never deletes
// audit entries.
func (l *Log) Prune(cutoff time.Time) (int, error) {
	removed := 0
	err := store.Update(l.store, Collection, func(entries []model.LogEntry) ([]model.LogEntry, error) {
		kept := make([]model.LogEntry, 0, len(entries))
		for _, e := range entries {
			if e.Timestamp.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
