// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"time"
)

// Content entity types.
const (
	TypePost   = "post"
	TypeCasino = "casino"
	TypeGame   = "game"
)

// Content lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Supported content locales. Spanish is the primary site language.
const (
	LocaleES = "es"
	LocaleEN = "en"
)

// FilterAll is the sentinel that disables a list filter.
const FilterAll = "all"

// ValidContentType reports whether t names a known content type.
func ValidContentType(t string) bool {
	return t == TypePost || t == TypeCasino || t == TypeGame
}

// ValidContentStatus reports whether s names a known lifecycle status.
func ValidContentStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// ValidLocale reports whether l is a supported locale.
func ValidLocale(l string) bool {
	return l == LocaleES || l == LocaleEN
}

// ContentID builds the canonical identifier for a newly created item.
// Wall-clock milliseconds are a coarse uniqueness strategy; the store
// retries with the next millisecond on a conflict.
func ContentID(contentType string, t time.Time) string {
	return fmt.Sprintf("%s-%d", contentType, t.UnixMilli())
}

// ContentItem is a generalized editable entity: a blog post, a casino
// review or a game record. Type-specific fields are zero-valued for the
// other types.
type ContentItem struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Locale       string    `json:"locale"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Author       string    `json:"author"`
	Summary      string    `json:"summary,omitempty"`
	Body         string    `json:"body,omitempty"`
	BodyHTML     string    `json:"body_html,omitempty"`
	Featured     bool      `json:"featured"`
	Provider     string    `json:"provider,omitempty"` // games only
	Rating       float64   `json:"rating,omitempty"`   // casinos only
	Bonus        string    `json:"bonus,omitempty"`    // casinos only
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

// IsPublished reports whether the item is publicly visible.
func (c *ContentItem) IsPublished() bool {
	return c.Status == StatusPublished
}

// ContentFilter narrows a content listing. String fields match exactly
// and are AND-combined; an empty string or the "all" sentinel disables
// that filter. Page is 1-indexed.
type ContentFilter struct {
	Type     string
	Status   string
	Locale   string
	Provider string
	Featured *bool
	Page     int
	Limit    int
}

// ContentStats aggregates counts for the admin dashboard.
type ContentStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
	Archived  int64 `json:"archived"`
	Featured  int64 `json:"featured"`
}
