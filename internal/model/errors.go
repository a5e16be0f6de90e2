// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the persisted record types and the error
// taxonomy shared by repositories and HTTP handlers.
package model

import "errors"

// Sentinel errors mapped to HTTP statuses at the boundary:
// ErrNotFound → 404, ErrValidation → 400, ErrUnauthorized → 401.
var (
	ErrNotFound     = errors.New("record not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
