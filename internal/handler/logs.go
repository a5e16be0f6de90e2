// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/flatcms/flatcms/internal/audit"
)

// LogsHandler exposes the audit log to administrators.
type LogsHandler struct {
	audit *audit.Log
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(auditLog *audit.Log) *LogsHandler {
	return &LogsHandler{audit: auditLog}
}

// List handles GET /api/logs?limit=N (admin only). Entries come back
// most recent first; the default window is the last 100.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, h.audit.Recent(limit))
}
