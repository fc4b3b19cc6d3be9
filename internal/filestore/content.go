// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package filestore

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/content"
	"github.com/vegaplay/vegaplay-go/internal/model"
)

// ContentFile is the content collection filename under the data dir.
const ContentFile = "content.json"

// ContentStore is the JSON-file fallback content backend.
type ContentStore struct {
	col *collection[model.ContentItem]
}

// NewContentStore creates a fallback store under dataDir.
func NewContentStore(dataDir string) *ContentStore {
	return &ContentStore{
		col: newCollection[model.ContentItem](filepath.Join(dataDir, ContentFile)),
	}
}

func matches(c model.ContentItem, f model.ContentFilter) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Locale != "" && c.Locale != f.Locale {
		return false
	}
	if f.Provider != "" && c.Provider != f.Provider {
		return false
	}
	if f.Featured != nil && c.Featured != *f.Featured {
		return false
	}
	return true
}

// List implements content.Store.
func (s *ContentStore) List(_ context.Context, f model.ContentFilter) ([]model.ContentItem, int64, error) {
	items, err := s.col.snapshot()
	if err != nil {
		return nil, 0, err
	}

	var filtered []model.ContentItem
	for _, c := range items {
		if matches(c, f) {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].LastModified.After(filtered[j].LastModified)
	})

	total := int64(len(filtered))
	start := (f.Page - 1) * f.Limit
	if start >= len(filtered) {
		return nil, total, nil
	}
	end := start + f.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

// Get implements content.Store.
func (s *ContentStore) Get(_ context.Context, id string) (model.ContentItem, error) {
	items, err := s.col.snapshot()
	if err != nil {
		return model.ContentItem{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return model.ContentItem{}, content.ErrNotFound
}

// Create implements content.Store.
func (s *ContentStore) Create(_ context.Context, item model.ContentItem) error {
	return s.col.mutate(func(items []model.ContentItem) ([]model.ContentItem, error) {
		for _, c := range items {
			if c.ID == item.ID {
				return nil, content.ErrDuplicateID
			}
		}
		return append(items, item), nil
	})
}

// Update implements content.Store.
func (s *ContentStore) Update(_ context.Context, item model.ContentItem) error {
	return s.col.mutate(func(items []model.ContentItem) ([]model.ContentItem, error) {
		for i, c := range items {
			if c.ID == item.ID {
				items[i] = item
				return items, nil
			}
		}
		return nil, content.ErrNotFound
	})
}

// Archive implements content.Store. Re-archiving is a no-op success.
func (s *ContentStore) Archive(_ context.Context, id string, at time.Time) error {
	return s.col.mutate(func(items []model.ContentItem) ([]model.ContentItem, error) {
		for i, c := range items {
			if c.ID == id {
				if c.Status != model.StatusArchived {
					items[i].Status = model.StatusArchived
					items[i].LastModified = at
				}
				return items, nil
			}
		}
		return nil, content.ErrNotFound
	})
}

// Delete implements content.Store.
func (s *ContentStore) Delete(_ context.Context, id string) error {
	return s.col.mutate(func(items []model.ContentItem) ([]model.ContentItem, error) {
		for i, c := range items {
			if c.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, content.ErrNotFound
	})
}

// Stats implements content.Store.
func (s *ContentStore) Stats(_ context.Context, contentType string) (model.ContentStats, error) {
	items, err := s.col.snapshot()
	if err != nil {
		return model.ContentStats{}, err
	}

	var stats model.ContentStats
	for _, c := range items {
		if c.Type != contentType {
			continue
		}
		stats.Total++
		switch c.Status {
		case model.StatusPublished:
			stats.Published++
		case model.StatusDraft:
			stats.Draft++
		case model.StatusArchived:
			stats.Archived++
		}
		if c.Featured {
			stats.Featured++
		}
	}
	return stats, nil
}
