// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Email token purposes.
const (
	TokenPurposeVerify = "verify"
	TokenPurposeReset  = "reset"
)

// Email token lifetimes.
const (
	VerifyTokenTTL = 24 * time.Hour
	ResetTokenTTL  = time.Hour
)

// EmailToken is a single-use token mailed to a user for email
// verification or password reset. Only the SHA-256 hash of the raw
// token is persisted.
type EmailToken struct {
	ID         int64
	UserID     int64
	TokenHash  string
	Purpose    string
	ExpiresAt  time.Time
	ConsumedAt sql.NullTime
	CreatedAt  time.Time
}

// Usable reports whether the token can still be redeemed at time now.
func (t *EmailToken) Usable(now time.Time) bool {
	return !t.ConsumedAt.Valid && now.Before(t.ExpiresAt)
}
