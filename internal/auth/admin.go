// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"fmt"
	"log/slog"
)

// AdminUserID is the identity recorded in sessions and audit entries
// for the administrator. There is exactly one privileged principal.
const AdminUserID = "1"

// Admin is the statically configured administrator account, loaded
// from configuration at startup.
type Admin struct {
	UserID       string
	Username     string
	PasswordHash string
}

// NewAdmin builds the admin record from a username and an encoded
// argon2id hash. When hash is empty, plainPassword is hashed instead;
// this mirrors the development seed of the original deployment and is
// warned about, since production should carry a pre-hashed secret.
func NewAdmin(username, hash, plainPassword string) (*Admin, error) {
	if username == "" {
		return nil, fmt.Errorf("admin username must not be empty")
	}
	if hash == "" {
		if plainPassword == "" {
			return nil, fmt.Errorf("either an admin password hash or a plain password is required")
		}
		var err error
		hash, err = HashPassword(plainPassword)
		if err != nil {
			return nil, fmt.Errorf("hashing admin password: %w", err)
		}
		slog.Warn("admin password supplied in plain text; prefer a pre-hashed secret in production")
	}
	return &Admin{
		UserID:       AdminUserID,
		Username:     username,
		PasswordHash: hash,
	}, nil
}

// Verify reports whether the supplied credentials match the admin
// account. It gives no indication of which part of the credential was
// wrong.
func (a *Admin) Verify(username, password string) bool {
	if username != a.Username {
		// Burn a hash check anyway so unknown usernames take as long
		// as wrong passwords.
		_, _ = CheckPassword(password, a.PasswordHash)
		return false
	}
	ok, err := CheckPassword(password, a.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		return false
	}
	return ok
}
