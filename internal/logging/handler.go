// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN and ERROR
// records into the audit trail so operational problems show up next to
// the editorial history they may have affected.
package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vegaplay/vegaplay-go/internal/audit"
	"github.com/vegaplay/vegaplay-go/internal/model"
)

// AuditHandler wraps another slog.Handler and also records WARN+ logs
// as audit events.
type AuditHandler struct {
	inner    slog.Handler
	recorder *audit.Recorder
	level    slog.Level
}

// NewAuditHandler creates an AuditHandler forwarding WARN and above.
func NewAuditHandler(inner slog.Handler, recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{inner: inner, recorder: recorder, level: slog.LevelWarn}
}

// Enabled implements slog.Handler.
func (h *AuditHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.recorder.Record(context.Background(), model.AuditEvent{
			Action:    "SYSTEM_" + strings.ToUpper(r.Level.String()),
			Details:   r.Message + attrSummary(r),
			Severity:  severityFor(r.Level),
			CreatedAt: r.Time,
		})
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditHandler{inner: h.inner.WithAttrs(attrs), recorder: h.recorder, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *AuditHandler) WithGroup(name string) slog.Handler {
	return &AuditHandler{inner: h.inner.WithGroup(name), recorder: h.recorder, level: h.level}
}

func severityFor(level slog.Level) string {
	if level >= slog.LevelError {
		return model.SeverityError
	}
	return model.SeverityWarning
}

// attrSummary renders record attributes as " (k=v, k=v)".
func attrSummary(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(" (")
	first := true
	r.Attrs(func(a slog.Attr) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
		return true
	})
	sb.WriteString(")")
	return sb.String()
}
