// Package logging provides a custom slog handler that integrates with
// the audit log. It forwards records at WARN level and above into the
// flat-file audit trail so operational problems show up next to the
// administrative actions they may have affected.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/model"
)

// AuditHandler is a slog.Handler that wraps another handler and also
// appends WARN and ERROR level records to the audit log.
type AuditHandler struct {
	inner slog.Handler
	log   *audit.Log
	level slog.Level

	// appending guards against re-entry: the audit append itself may
	// emit warnings (e.g. a corrupt logs file), which must not be
	// mirrored back into the audit log.
	appending *atomic.Bool
}

// NewAuditHandler creates an AuditHandler that wraps the given
// handler. Records at WARN and above are mirrored into the audit log.
func NewAuditHandler(inner slog.Handler, log *audit.Log) *AuditHandler {
	return &AuditHandler{
		inner:     inner,
		log:       log,
		level:     slog.LevelWarn,
		appending: &atomic.Bool{},
	}
}

// Enabled implements slog.Handler.
func (h *AuditHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeToAuditLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditHandler{inner: h.inner.WithAttrs(attrs), log: h.log, level: h.level, appending: h.appending}
}

// WithGroup implements slog.Handler.
func (h *AuditHandler) WithGroup(name string) slog.Handler {
	return &AuditHandler{inner: h.inner.WithGroup(name), log: h.log, level: h.level, appending: h.appending}
}

func (h *AuditHandler) writeToAuditLog(r slog.Record) {
	if !h.appending.CompareAndSwap(false, true) {
		return
	}
	defer h.appending.Store(false)

	action := model.ActionSystemWarning
	if r.Level >= slog.LevelError {
		action = model.ActionSystemError
	}

	details := map[string]any{"message": r.Message}
	r.Attrs(func(a slog.Attr) bool {
		details[a.Key] = a.Value.String()
		return true
	})

	// Append is best-effort; no user context is available from slog.
	h.log.Append(action, model.UserUnknown, details)
}
