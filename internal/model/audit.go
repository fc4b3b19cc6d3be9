// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Audit actions.
const (
	AuditContentCreated  = "CONTENT_CREATED"
	AuditContentUpdated  = "CONTENT_UPDATED"
	AuditContentArchived = "CONTENT_ARCHIVED"
	AuditContentDeleted  = "CONTENT_DELETED"
	AuditUserRegistered  = "USER_REGISTERED"
	AuditUserLogin       = "USER_LOGIN"
	AuditUserLogout      = "USER_LOGOUT"
	AuditLoginFailed     = "LOGIN_FAILED"
	AuditAccessDenied    = "ACCESS_DENIED"
	AuditEmailVerified   = "EMAIL_VERIFIED"
	AuditPasswordReset   = "PASSWORD_RESET"
)

// Audit severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// MaxAuditEntries is the retention cap on the audit trail. The oldest
// entries are evicted once the collection exceeds it.
const MaxAuditEntries = 1000

// AuditEvent is an immutable record of a content-mutating or
// security-relevant action. Events are stored newest first.
type AuditEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	EntityName string    `json:"entity_name,omitempty"`
	Details    string    `json:"details,omitempty"`
	User       string    `json:"user,omitempty"`
	Severity   string    `json:"severity"`
	CreatedAt  time.Time `json:"created_at"`
}
