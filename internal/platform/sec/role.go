// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including takedowns and user management
	RoleAdmin UserRole = "admin"

	// Can review submitted works and publish approved ones
	RoleEditor UserRole = "editor"

	// Default role: can author works and manage their own content
	RoleCreator UserRole = "creator"
)

// ValidRole reports whether the raw string names a defined role.
func ValidRole(raw string) bool {
	switch UserRole(raw) {
	case RoleAdmin, RoleEditor, RoleCreator:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleCreator:
		return 10
	default:
		return 0
	}
}

// # Account Status

// AccountStatus represents the standing of an account, mutable by admins only.
//
// Suspended and banned users can still authenticate and read public content,
// but every authoring, commenting, and liking action is rejected at the
// service boundary — not merely hidden in a UI.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusBanned    AccountStatus = "banned"
)

// ValidAccountStatus reports whether the raw string names a defined status.
func ValidAccountStatus(raw string) bool {
	switch AccountStatus(raw) {
	case StatusActive, StatusSuspended, StatusBanned:
		return true
	}
	return false
}

// # Actor

// Actor is the identity attempting an operation, threaded explicitly into
// every service call. It is resolved from the database per request so role
// and status changes take effect immediately, not at next token refresh.
type Actor struct {
	ID     string
	Role   UserRole
	Status AccountStatus
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsEditorial reports whether the actor may act on the review pipeline
// (approve, reject, publish).
func (a Actor) IsEditorial() bool {
	return a.Role == RoleEditor || a.Role == RoleAdmin
}

// IsActive reports whether the actor's account is in good standing.
func (a Actor) IsActive() bool {
	return a.Status == StatusActive
}

// Owns reports whether the actor is the author of the entity owned by authorID.
func (a Actor) Owns(authorID string) bool {
	return a.ID != "" && a.ID == authorID
}
