// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// AuditStore is the SQLite-backed primary audit trail.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore creates the primary audit store.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Append inserts an event and evicts the oldest rows beyond the
// retention cap.
func (s *AuditStore) Append(ctx context.Context, ev model.AuditEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, action, entity_type, entity_id, entity_name, details, actor, severity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Action, ev.EntityType, ev.EntityID, ev.EntityName,
		ev.Details, ev.User, ev.Severity, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending audit event: %w", err)
	}

	// rowid preserves insertion order even when timestamps tie.
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM audit_events WHERE rowid NOT IN (
			SELECT rowid FROM audit_events ORDER BY rowid DESC LIMIT ?
		)`, model.MaxAuditEntries)
	if err != nil {
		return fmt.Errorf("trimming audit events: %w", err)
	}
	return nil
}

// Trim deletes rows beyond the retention cap, oldest first. Returns
// how many rows were removed.
func (s *AuditStore) Trim(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM audit_events WHERE rowid NOT IN (
			SELECT rowid FROM audit_events ORDER BY rowid DESC LIMIT ?
		)`, model.MaxAuditEntries)
	if err != nil {
		return 0, fmt.Errorf("trimming audit events: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// List returns events newest first with the total count.
func (s *AuditStore) List(ctx context.Context, page, limit int) ([]model.AuditEvent, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting audit events: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, entity_type, entity_id, entity_name, details, actor, severity, created_at
		FROM audit_events ORDER BY rowid DESC LIMIT ? OFFSET ?`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []model.AuditEvent
	for rows.Next() {
		var ev model.AuditEvent
		if err := rows.Scan(&ev.ID, &ev.Action, &ev.EntityType, &ev.EntityID,
			&ev.EntityName, &ev.Details, &ev.User, &ev.Severity, &ev.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning audit event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing audit events: %w", err)
	}
	return events, total, nil
}
