package model

import "time"

// Audit actions recorded by handlers and the auth gate.
const (
	ActionLoginSuccess      = "login_success"
	ActionLoginFailed       = "login_failed"
	ActionLogout            = "logout"
	ActionEventCreated      = "event_created"
	ActionEventUpdated      = "event_updated"
	ActionEventDeleted      = "event_deleted"
	ActionEventArchived     = "event_archived"
	ActionEventUnarchived   = "event_unarchived"
	ActionBlockCreated      = "content_block_created"
	ActionBlockUpdated      = "content_block_updated"
	ActionBlockDeleted      = "content_block_deleted"
	ActionStaticTextUpdated = "static_text_updated"
	ActionSystemWarning     = "system_warning"
	ActionSystemError       = "system_error"
)

// UserUnknown is the actor recorded when no identity is available,
// e.g. a failed login attempt.
const UserUnknown = "unknown"

// LogEntry is one append-only audit record. Entries are never mutated
// or deleted by request handling; only the retention job removes them.
type LogEntry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	UserID    string         `json:"userId"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}
