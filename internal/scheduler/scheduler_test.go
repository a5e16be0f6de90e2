// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/model"
	"github.com/flatcms/flatcms/internal/store"
)

func newTestScheduler(t *testing.T, retentionDays int) (*Scheduler, *audit.Log, *store.Store) {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}
	log := audit.New(s)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, retentionDays, logger), log, s
}

func TestStart_PrunesOldEntriesImmediately(t *testing.T) {
	sched, log, s := newTestScheduler(t, 30)

	entries := []model.LogEntry{
		{ID: "old", Action: model.ActionLogout, UserID: "1", Timestamp: time.Now().UTC().AddDate(0, 0, -60)},
		{ID: "new", Action: model.ActionLoginSuccess, UserID: "1", Timestamp: time.Now().UTC()},
	}
	if err := store.Save(s, audit.Collection, entries); err != nil {
		t.Fatalf("seeding entries: %v", err)
	}

	if err := sched.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer sched.Stop()

	got := log.Recent(10)
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("entries after startup prune = %+v, want only the recent one", got)
	}
}

func TestStart_RetentionDisabledKeepsEverything(t *testing.T) {
	sched, log, s := newTestScheduler(t, 0)

	old := model.LogEntry{ID: "old", Action: model.ActionLogout, UserID: "1",
		Timestamp: time.Now().UTC().AddDate(-1, 0, 0)}
	if err := store.Save(s, audit.Collection, []model.LogEntry{old}); err != nil {
		t.Fatalf("seeding entries: %v", err)
	}

	if err := sched.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	sched.Stop()

	if got := log.Recent(10); len(got) != 1 {
		t.Errorf("entries = %d, want 1 (retention disabled)", len(got))
	}
}
