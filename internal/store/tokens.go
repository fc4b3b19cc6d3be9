// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// CreateEmailToken persists a token hash for verification or reset mail.
func (q *Queries) CreateEmailToken(ctx context.Context, t model.EmailToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO email_tokens (user_id, token_hash, purpose, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.UserID, t.TokenHash, t.Purpose, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating email token: %w", err)
	}
	return nil
}

// GetEmailToken looks a token up by hash and purpose. sql.ErrNoRows when absent.
func (q *Queries) GetEmailToken(ctx context.Context, tokenHash, purpose string) (model.EmailToken, error) {
	var t model.EmailToken
	err := q.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, purpose, expires_at, consumed_at, created_at
		FROM email_tokens WHERE token_hash = ? AND purpose = ?`,
		tokenHash, purpose).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.Purpose, &t.ExpiresAt, &t.ConsumedAt, &t.CreatedAt)
	return t, err
}

// ConsumeEmailToken marks a token used. Returns sql.ErrNoRows when the
// token was already consumed, guaranteeing single use under races.
func (q *Queries) ConsumeEmailToken(ctx context.Context, id int64, at time.Time) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE email_tokens SET consumed_at = ? WHERE id = ? AND consumed_at IS NULL`,
		at, id)
	if err != nil {
		return fmt.Errorf("consuming email token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("consuming email token: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PurgeEmailTokens deletes tokens that have expired or were consumed
// before the cutoff. Returns the number of rows removed.
func (q *Queries) PurgeEmailTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM email_tokens WHERE expires_at < ? OR (consumed_at IS NOT NULL AND consumed_at < ?)`,
		cutoff, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging email tokens: %w", err)
	}
	return res.RowsAffected()
}
