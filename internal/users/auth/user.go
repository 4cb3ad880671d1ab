// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package auth implements the user identity and session management layer.

It defines the core account entity and the logic for registration, login,
refresh-token rotation, and profile management. Role and account-status
semantics live in [sec]; this package persists them and resolves the
per-request [sec.Actor] that every domain service authorizes against.
*/
package auth

import (
	"time"

	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Inkwell platform.
type User struct {
	ID           string            `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole      `json:"role"`
	Status       sec.AccountStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// DisplayName returns the user's full name as rendered on works and comments.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Actor projects the account into the authorization identity used by the
// domain services.
func (u *User) Actor() sec.Actor {
	return sec.Actor{ID: u.ID, Role: u.Role, Status: u.Status}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the
// authentication domain.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
