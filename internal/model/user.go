// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including User, ContentItem, AuditEvent and token structures.
package model

import (
	"database/sql"
	"time"
)

// User roles, ordered from least to most privileged.
const (
	RoleViewer     = "viewer"
	RoleReviewer   = "reviewer"
	RoleEditor     = "editor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// roleRanks maps each role to its position in the hierarchy.
// Unknown roles rank 0 and are denied everything that requires a role.
var roleRanks = map[string]int{
	RoleViewer:     1,
	RoleReviewer:   2,
	RoleEditor:     3,
	RoleAdmin:      4,
	RoleSuperAdmin: 5,
}

// RoleRank returns the numeric rank of a role. Unknown roles rank 0.
func RoleRank(role string) int {
	return roleRanks[role]
}

// ValidRole reports whether role is one of the five known roles.
func ValidRole(role string) bool {
	_, ok := roleRanks[role]
	return ok
}

// HasPermission reports whether a user with userRole may perform an action
// that requires at least requiredRole. The check is a total order over the
// role ranks and fails closed for unknown roles.
func HasPermission(userRole, requiredRole string) bool {
	required := RoleRank(requiredRole)
	if required == 0 {
		// An action gated on an unknown role is never permitted.
		return false
	}
	return RoleRank(userRole) >= required
}

// User represents an account on the platform.
type User struct {
	ID            int64        `json:"id"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"` // Never expose in JSON
	Name          string       `json:"name"`
	Role          string       `json:"role"`
	IsActive      bool         `json:"is_active"`
	EmailVerified bool         `json:"email_verified"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	LastLoginAt   sql.NullTime `json:"last_login_at,omitempty"`
}

// Can reports whether the user holds at least the given role.
func (u *User) Can(requiredRole string) bool {
	return HasPermission(u.Role, requiredRole)
}

// IsAdmin returns true for admin and super_admin users.
func (u *User) IsAdmin() bool {
	return u.Can(RoleAdmin)
}
