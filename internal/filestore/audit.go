// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package filestore

import (
	"context"
	"path/filepath"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// AuditFile is the audit collection filename under the data dir.
const AuditFile = "audit-log.json"

// AuditStore is the JSON-file fallback audit backend. The collection is
// kept newest first and capped at model.MaxAuditEntries.
type AuditStore struct {
	col *collection[model.AuditEvent]
}

// NewAuditStore creates a fallback audit store under dataDir.
func NewAuditStore(dataDir string) *AuditStore {
	return &AuditStore{
		col: newCollection[model.AuditEvent](filepath.Join(dataDir, AuditFile)),
	}
}

// Append prepends the event and truncates to the retention cap.
func (s *AuditStore) Append(_ context.Context, ev model.AuditEvent) error {
	return s.col.mutate(func(events []model.AuditEvent) ([]model.AuditEvent, error) {
		events = append([]model.AuditEvent{ev}, events...)
		if len(events) > model.MaxAuditEntries {
			events = events[:model.MaxAuditEntries]
		}
		return events, nil
	})
}

// List returns events newest first with the total count.
func (s *AuditStore) List(_ context.Context, page, limit int) ([]model.AuditEvent, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	events, err := s.col.snapshot()
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(events))
	start := (page - 1) * limit
	if start >= len(events) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(events) {
		end = len(events)
	}
	return events[start:end], total, nil
}
