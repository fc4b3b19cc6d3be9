// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content defines the content store contract, the failover
// adapter over the primary and fallback backends, and the service that
// applies the editorial rules (ids, slugs, markdown rendering).
package content

import (
	"context"
	"errors"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// Domain errors shared by every store implementation.
var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("content: not found")
	// ErrDuplicateID is returned when a create collides with an
	// existing identifier.
	ErrDuplicateID = errors.New("content: duplicate id")
)

// Store is the contract both backends implement: the SQLite primary and
// the flat JSON fallback. Callers never see which backend served them.
type Store interface {
	// List returns the filtered page of items plus the total match count.
	List(ctx context.Context, f model.ContentFilter) ([]model.ContentItem, int64, error)
	Get(ctx context.Context, id string) (model.ContentItem, error)
	Create(ctx context.Context, item model.ContentItem) error
	Update(ctx context.Context, item model.ContentItem) error
	// Archive transitions the item to archived. Archiving an archived
	// item succeeds and leaves it archived.
	Archive(ctx context.Context, id string, at time.Time) error
	// Delete removes the item permanently.
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, contentType string) (model.ContentStats, error)
}
