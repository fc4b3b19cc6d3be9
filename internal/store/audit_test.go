// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/store"
	"github.com/vegaplay/vegaplay-go/internal/testutil"
)

func appendEvents(t *testing.T, s *store.AuditStore, n int) {
	t.Helper()
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		ev := model.AuditEvent{
			ID:        fmt.Sprintf("ev-%d", i),
			Action:    model.AuditContentCreated,
			User:      "lucia@vegaplay.es",
			Severity:  model.SeverityInfo,
			CreatedAt: now,
		}
		if err := s.Append(context.Background(), ev); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
}

func TestAuditStore_ListNewestFirst(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	s := store.NewAuditStore(db)

	appendEvents(t, s, 5)

	events, total, err := s.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 || len(events) != 5 {
		t.Fatalf("List = %d/%d, want 5/5", len(events), total)
	}
	// Identical timestamps must not disturb insertion order.
	for i, ev := range events {
		want := fmt.Sprintf("ev-%d", 4-i)
		if ev.ID != want {
			t.Errorf("events[%d] = %q, want %q", i, ev.ID, want)
		}
	}
}

func TestAuditStore_AppendEvictsOldest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping retention cap test in short mode")
	}
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	s := store.NewAuditStore(db)

	appendEvents(t, s, model.MaxAuditEntries+10)

	events, total, err := s.List(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != model.MaxAuditEntries {
		t.Errorf("total = %d, want cap %d", total, model.MaxAuditEntries)
	}
	if events[0].ID != fmt.Sprintf("ev-%d", model.MaxAuditEntries+9) {
		t.Errorf("head = %q, want newest", events[0].ID)
	}
}

func TestAuditStore_Trim(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	s := store.NewAuditStore(db)
	ctx := context.Background()

	appendEvents(t, s, 20)

	removed, err := s.Trim(ctx)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if removed != 0 {
		t.Errorf("Trim under cap removed %d rows", removed)
	}

	// Bypass Append's inline eviction to overfill the table.
	now := time.Now().UTC()
	for i := 0; i < model.MaxAuditEntries; i++ {
		_, err := db.ExecContext(ctx, `
			INSERT INTO audit_events (id, action, entity_type, entity_id, entity_name, details, actor, severity, created_at)
			VALUES (?, ?, '', '', '', '', 'seed', ?, ?)`,
			fmt.Sprintf("bulk-%d", i), model.AuditContentCreated, model.SeverityInfo, now)
		if err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	removed, err = s.Trim(ctx)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if removed != 20 {
		t.Errorf("Trim removed %d rows, want 20", removed)
	}
	_, total, err := s.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != model.MaxAuditEntries {
		t.Errorf("total = %d after Trim, want %d", total, model.MaxAuditEntries)
	}
}
