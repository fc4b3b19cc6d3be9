// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// mapStore is an in-memory Store for tests.
type mapStore struct {
	mu    sync.Mutex
	items map[string]model.ContentItem
	// err, when set, makes every call fail with a backend error.
	err error
}

func newMapStore() *mapStore {
	return &mapStore{items: make(map[string]model.ContentItem)}
}

func (m *mapStore) List(_ context.Context, f model.ContentFilter) ([]model.ContentItem, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.ContentItem
	for _, it := range m.items {
		if f.Type != "" && it.Type != f.Type {
			continue
		}
		if f.Status != "" && it.Status != f.Status {
			continue
		}
		if f.Locale != "" && it.Locale != f.Locale {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, int64(len(out)), nil
}

func (m *mapStore) Get(_ context.Context, id string) (model.ContentItem, error) {
	if m.err != nil {
		return model.ContentItem{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return model.ContentItem{}, ErrNotFound
	}
	return it, nil
}

func (m *mapStore) Create(_ context.Context, item model.ContentItem) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; ok {
		return ErrDuplicateID
	}
	m.items[item.ID] = item
	return nil
}

func (m *mapStore) Update(_ context.Context, item model.ContentItem) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return ErrNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *mapStore) Archive(_ context.Context, id string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	if it.Status != model.StatusArchived {
		it.Status = model.StatusArchived
		it.LastModified = at
		m.items[id] = it
	}
	return nil
}

func (m *mapStore) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mapStore) Stats(_ context.Context, contentType string) (model.ContentStats, error) {
	if m.err != nil {
		return model.ContentStats{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var st model.ContentStats
	for _, it := range m.items {
		if contentType != "" && it.Type != contentType {
			continue
		}
		st.Total++
		switch it.Status {
		case model.StatusPublished:
			st.Published++
		case model.StatusDraft:
			st.Draft++
		case model.StatusArchived:
			st.Archived++
		}
		if it.Featured {
			st.Featured++
		}
	}
	return st, nil
}

var errBackend = errors.New("disk on fire")

func TestFailover_PrimaryHealthy(t *testing.T) {
	primary := newMapStore()
	fallback := newMapStore()
	fo := NewFailover(primary, fallback, nil)
	ctx := context.Background()

	item := model.ContentItem{ID: "casino-1", Type: model.TypeCasino, Status: model.StatusPublished}
	if err := fo.Create(ctx, item); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, ok := primary.items["casino-1"]; !ok {
		t.Error("item should land in the primary store")
	}
	if len(fallback.items) != 0 {
		t.Error("healthy primary must not touch the fallback")
	}
}

func TestFailover_FallsBackOnBackendError(t *testing.T) {
	primary := newMapStore()
	fallback := newMapStore()
	fallback.items["game-9"] = model.ContentItem{ID: "game-9", Type: model.TypeGame}

	fo := NewFailover(primary, fallback, nil)
	primary.err = errBackend

	got, err := fo.Get(context.Background(), "game-9")
	if err != nil {
		t.Fatalf("Get should fall back, got error: %v", err)
	}
	if got.ID != "game-9" {
		t.Errorf("got item %q, want game-9", got.ID)
	}
}

func TestFailover_DomainErrorsDoNotFallBack(t *testing.T) {
	primary := newMapStore()
	fallback := newMapStore()
	// If the failover consulted the fallback, this copy would answer.
	fallback.items["post-1"] = model.ContentItem{ID: "post-1", Type: model.TypePost}

	fo := NewFailover(primary, fallback, nil)

	_, err := fo.Get(context.Background(), "post-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get = %v, want ErrNotFound from the primary", err)
	}
}

func TestFailover_DuplicateIDIsAnAnswer(t *testing.T) {
	primary := newMapStore()
	fallback := newMapStore()
	item := model.ContentItem{ID: "casino-7", Type: model.TypeCasino}
	primary.items["casino-7"] = item

	fo := NewFailover(primary, fallback, nil)

	err := fo.Create(context.Background(), item)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Create = %v, want ErrDuplicateID", err)
	}
	if len(fallback.items) != 0 {
		t.Error("duplicate id must not be retried on the fallback")
	}
}

func TestFailover_ListNeverMixesBackends(t *testing.T) {
	primary := newMapStore()
	fallback := newMapStore()
	primary.items["casino-1"] = model.ContentItem{ID: "casino-1", Type: model.TypeCasino}
	fallback.items["casino-2"] = model.ContentItem{ID: "casino-2", Type: model.TypeCasino}

	fo := NewFailover(primary, fallback, nil)

	items, total, err := fo.List(context.Background(), model.ContentFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != "casino-1" {
		t.Errorf("List = %v (total %d), want only the primary's casino-1", items, total)
	}

	// With the primary down, only the fallback's view is served.
	primary.err = errBackend
	items, total, err = fo.List(context.Background(), model.ContentFilter{})
	if err != nil {
		t.Fatalf("List after failover: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != "casino-2" {
		t.Errorf("List = %v (total %d), want only the fallback's casino-2", items, total)
	}
}
