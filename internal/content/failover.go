// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// Failover tries the primary store and, when it fails with a backend
// error, retries the same operation against the fallback. Results from
// the two backends are never mixed within one call. Domain errors
// (not found, duplicate id) are answers, not failures, and do not
// trigger the fallback.
type Failover struct {
	primary  Store
	fallback Store
	logger   *slog.Logger
}

// NewFailover wires a primary and a fallback store.
func NewFailover(primary, fallback Store, logger *slog.Logger) *Failover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Failover{primary: primary, fallback: fallback, logger: logger}
}

// domainError reports whether err is an answer rather than a backend failure.
func domainError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateID)
}

func (s *Failover) degraded(op string, err error) {
	s.logger.Warn("primary content store failed, using fallback", "op", op, "error", err)
}

// List implements Store.
func (s *Failover) List(ctx context.Context, f model.ContentFilter) ([]model.ContentItem, int64, error) {
	items, total, err := s.primary.List(ctx, f)
	if err == nil || domainError(err) {
		return items, total, err
	}
	s.degraded("list", err)
	return s.fallback.List(ctx, f)
}

// Get implements Store.
func (s *Failover) Get(ctx context.Context, id string) (model.ContentItem, error) {
	item, err := s.primary.Get(ctx, id)
	if err == nil || domainError(err) {
		return item, err
	}
	s.degraded("get", err)
	return s.fallback.Get(ctx, id)
}

// Create implements Store.
func (s *Failover) Create(ctx context.Context, item model.ContentItem) error {
	err := s.primary.Create(ctx, item)
	if err == nil || domainError(err) {
		return err
	}
	s.degraded("create", err)
	return s.fallback.Create(ctx, item)
}

// Update implements Store.
func (s *Failover) Update(ctx context.Context, item model.ContentItem) error {
	err := s.primary.Update(ctx, item)
	if err == nil || domainError(err) {
		return err
	}
	s.degraded("update", err)
	return s.fallback.Update(ctx, item)
}

// Archive implements Store.
func (s *Failover) Archive(ctx context.Context, id string, at time.Time) error {
	err := s.primary.Archive(ctx, id, at)
	if err == nil || domainError(err) {
		return err
	}
	s.degraded("archive", err)
	return s.fallback.Archive(ctx, id, at)
}

// Delete implements Store.
func (s *Failover) Delete(ctx context.Context, id string) error {
	err := s.primary.Delete(ctx, id)
	if err == nil || domainError(err) {
		return err
	}
	s.degraded("delete", err)
	return s.fallback.Delete(ctx, id)
}

// Stats implements Store.
func (s *Failover) Stats(ctx context.Context, contentType string) (model.ContentStats, error) {
	stats, err := s.primary.Stats(ctx, contentType)
	if err == nil || domainError(err) {
		return stats, err
	}
	s.degraded("stats", err)
	return s.fallback.Stats(ctx, contentType)
}
