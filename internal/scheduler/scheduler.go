// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs. Currently the
// only job is audit log retention: without it the logs collection
// grows without bound, so retention is an explicit, configurable
// decision rather than an accident.
package scheduler

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/flatcms/flatcms/internal/audit"
)

// Scheduler owns the cron runner and the maintenance jobs.
type Scheduler struct {
	cron          *cron.Cron
	audit         *audit.Log
	retentionDays int
	logger        *slog.Logger
}

// New creates a scheduler. retentionDays of 0 disables pruning and
// keeps audit entries forever.
func New(auditLog *audit.Log, retentionDays int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		audit:         auditLog,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Start registers the retention job (daily, shortly after midnight)
// and begins the cron runner. With retention disabled the runner is
// not started at all.
func (s *Scheduler) Start() error {
	if s.retentionDays <= 0 {
		s.logger.Info("audit retention disabled, keeping entries forever")
		return nil
	}

	if _, err := s.cron.AddFunc("10 0 * * *", s.pruneAuditLog); err != nil {
		return err
	}

	// Prune once at startup so a long-stopped instance catches up
	// without waiting a day.
	s.pruneAuditLog()

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "audit_retention_days", s.retentionDays)
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	if s.retentionDays <= 0 {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) pruneAuditLog() {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
	removed, err := s.audit.Prune(cutoff)
	if err != nil {
		s.logger.Error("audit retention prune failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("audit retention prune complete", "removed", removed, "cutoff", cutoff)
	}
}
