// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package audit records content-mutating and security-relevant actions.
// Recording is best-effort: a failed audit write is logged and never
// surfaces to the handler that triggered it.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// Store is implemented by the SQLite primary and the JSON-file fallback.
type Store interface {
	Append(ctx context.Context, ev model.AuditEvent) error
	List(ctx context.Context, page, limit int) ([]model.AuditEvent, int64, error)
}

// Recorder writes audit events through a primary store, falling back to
// a secondary when the primary fails.
type Recorder struct {
	primary  Store
	fallback Store
	logger   *slog.Logger
	now      func() time.Time
}

// NewRecorder creates a Recorder. fallback may be nil.
func NewRecorder(primary, fallback Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{primary: primary, fallback: fallback, logger: logger, now: time.Now}
}

// Record appends an event, filling in id, severity and timestamp when
// absent. Failures are reported to the operational log only.
func (r *Recorder) Record(ctx context.Context, ev model.AuditEvent) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Severity == "" {
		ev.Severity = model.SeverityInfo
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = r.now()
	}

	// A cancelled request must not lose its audit record.
	ctx = context.WithoutCancel(ctx)

	err := r.primary.Append(ctx, ev)
	if err == nil {
		return
	}
	r.logger.Error("audit write failed on primary store", "action", ev.Action, "error", err)

	if r.fallback == nil {
		return
	}
	if err := r.fallback.Append(ctx, ev); err != nil {
		r.logger.Error("audit write failed on fallback store", "action", ev.Action, "error", err)
	}
}

// List returns events newest first, preferring the primary store.
func (r *Recorder) List(ctx context.Context, page, limit int) ([]model.AuditEvent, int64, error) {
	events, total, err := r.primary.List(ctx, page, limit)
	if err == nil || r.fallback == nil {
		return events, total, err
	}
	r.logger.Warn("audit list failed on primary store, using fallback", "error", err)
	return r.fallback.List(ctx, page, limit)
}

// ContentEvent is a convenience constructor for content mutations.
func ContentEvent(action string, item model.ContentItem, actor string) model.AuditEvent {
	return model.AuditEvent{
		Action:     action,
		EntityType: item.Type,
		EntityID:   item.ID,
		EntityName: item.Title,
		User:       actor,
		Severity:   model.SeverityInfo,
	}
}
