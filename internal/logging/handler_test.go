// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vegaplay/vegaplay-go/internal/audit"
	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/testutil"
)

type memAuditStore struct {
	events []model.AuditEvent
}

func (m *memAuditStore) Append(_ context.Context, ev model.AuditEvent) error {
	m.events = append(m.events, ev)
	return nil
}

func (m *memAuditStore) List(_ context.Context, _, _ int) ([]model.AuditEvent, int64, error) {
	return m.events, int64(len(m.events)), nil
}

func newAuditLogger(t *testing.T) (*slog.Logger, *memAuditStore) {
	t.Helper()
	store := &memAuditStore{}
	rec := audit.NewRecorder(store, nil, testutil.TestLogger())
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewAuditHandler(inner, rec)), store
}

func TestAuditHandler_MirrorsWarningsAndErrors(t *testing.T) {
	logger, store := newAuditLogger(t)

	logger.Info("routine startup", "port", 8080)
	if len(store.events) != 0 {
		t.Fatalf("info level reached the audit trail: %+v", store.events)
	}

	logger.Warn("rate limit exceeded", "ip", "203.0.113.9")
	logger.Error("database write failed", "error", "disk full")

	if len(store.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(store.events))
	}

	warn := store.events[0]
	if warn.Action != "SYSTEM_WARN" || warn.Severity != model.SeverityWarning {
		t.Errorf("warn event = %+v", warn)
	}
	if !strings.Contains(warn.Details, "rate limit exceeded") || !strings.Contains(warn.Details, "ip=203.0.113.9") {
		t.Errorf("warn details = %q", warn.Details)
	}

	errEv := store.events[1]
	if errEv.Action != "SYSTEM_ERROR" || errEv.Severity != model.SeverityError {
		t.Errorf("error event = %+v", errEv)
	}
}

func TestAuditHandler_WithAttrsKeepsMirroring(t *testing.T) {
	logger, store := newAuditLogger(t)

	logger.With("component", "scheduler").Warn("job failed")

	if len(store.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(store.events))
	}
}
