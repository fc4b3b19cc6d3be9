// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/util"
)

// ErrArchiveOnly is returned when a hard delete is attempted on a blog
// post. Posts are soft-archived, never deleted.
var ErrArchiveOnly = errors.New("content: blog posts are archived, not deleted")

// ValidationError describes a rejected payload. Handlers map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content: invalid %s: %s", e.Field, e.Reason)
}

// idRetries bounds the create retry loop when two items of the same
// type are created within one millisecond.
const idRetries = 3

// maxListLimit caps the page size a client may request.
const maxListLimit = 100

// CreateInput is a validated creation payload.
type CreateInput struct {
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Status   string  `json:"status"`
	Locale   string  `json:"locale"`
	Slug     string  `json:"slug"`
	Summary  string  `json:"summary"`
	Body     string  `json:"body"`
	Featured bool    `json:"featured"`
	Provider string  `json:"provider"`
	Rating   float64 `json:"rating"`
	Bonus    string  `json:"bonus"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title    *string  `json:"title"`
	Author   *string  `json:"author"`
	Status   *string  `json:"status"`
	Locale   *string  `json:"locale"`
	Slug     *string  `json:"slug"`
	Summary  *string  `json:"summary"`
	Body     *string  `json:"body"`
	Featured *bool    `json:"featured"`
	Provider *string  `json:"provider"`
	Rating   *float64 `json:"rating"`
	Bonus    *string  `json:"bonus"`
}

// Service applies the editorial rules on top of a Store: identifier
// assignment, slug generation, markdown rendering and sanitization.
type Service struct {
	store     Store
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewService creates a content service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		sanitizer: bluemonday.UGCPolicy(),
		now:       time.Now,
	}
}

// renderBody converts markdown to sanitized HTML.
func (s *Service) renderBody(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("rendering body: %w", err)
	}
	return s.sanitizer.Sanitize(buf.String()), nil
}

// Create validates the payload and stores a new item. The identifier is
// derived from the creation time; a same-millisecond collision retries
// with the next millisecond.
func (s *Service) Create(ctx context.Context, in CreateInput) (model.ContentItem, error) {
	var zero model.ContentItem

	if !model.ValidContentType(in.Type) {
		return zero, &ValidationError{Field: "type", Reason: "must be post, casino or game"}
	}
	if strings.TrimSpace(in.Title) == "" {
		return zero, &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(in.Author) == "" {
		return zero, &ValidationError{Field: "author", Reason: "required"}
	}
	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	if !model.ValidContentStatus(in.Status) {
		return zero, &ValidationError{Field: "status", Reason: "must be draft, published or archived"}
	}
	if in.Locale == "" {
		in.Locale = model.LocaleES
	}
	if !model.ValidLocale(in.Locale) {
		return zero, &ValidationError{Field: "locale", Reason: "must be es or en"}
	}
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Title)
	} else if !util.IsValidSlug(in.Slug) {
		return zero, &ValidationError{Field: "slug", Reason: "use lowercase letters, numbers and hyphens"}
	}

	bodyHTML, err := s.renderBody(in.Body)
	if err != nil {
		return zero, err
	}

	now := s.now()
	item := model.ContentItem{
		Type:         in.Type,
		Status:       in.Status,
		Locale:       in.Locale,
		Title:        in.Title,
		Slug:         in.Slug,
		Author:       in.Author,
		Summary:      in.Summary,
		Body:         in.Body,
		BodyHTML:     bodyHTML,
		Featured:     in.Featured,
		Provider:     in.Provider,
		Rating:       in.Rating,
		Bonus:        in.Bonus,
		CreatedAt:    now,
		LastModified: now,
	}

	for attempt := 0; attempt < idRetries; attempt++ {
		item.ID = model.ContentID(in.Type, now.Add(time.Duration(attempt)*time.Millisecond))
		err = s.store.Create(ctx, item)
		if !errors.Is(err, ErrDuplicateID) {
			break
		}
	}
	if err != nil {
		return zero, err
	}
	return item, nil
}

// Update applies a partial update to an existing item.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (model.ContentItem, error) {
	var zero model.ContentItem

	item, err := s.store.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return zero, &ValidationError{Field: "title", Reason: "required"}
		}
		item.Title = *in.Title
	}
	if in.Author != nil {
		item.Author = *in.Author
	}
	if in.Status != nil {
		if !model.ValidContentStatus(*in.Status) {
			return zero, &ValidationError{Field: "status", Reason: "must be draft, published or archived"}
		}
		item.Status = *in.Status
	}
	if in.Locale != nil {
		if !model.ValidLocale(*in.Locale) {
			return zero, &ValidationError{Field: "locale", Reason: "must be es or en"}
		}
		item.Locale = *in.Locale
	}
	if in.Slug != nil {
		if !util.IsValidSlug(*in.Slug) {
			return zero, &ValidationError{Field: "slug", Reason: "use lowercase letters, numbers and hyphens"}
		}
		item.Slug = *in.Slug
	}
	if in.Summary != nil {
		item.Summary = *in.Summary
	}
	if in.Body != nil {
		item.Body = *in.Body
		html, err := s.renderBody(*in.Body)
		if err != nil {
			return zero, err
		}
		item.BodyHTML = html
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}
	if in.Provider != nil {
		item.Provider = *in.Provider
	}
	if in.Rating != nil {
		item.Rating = *in.Rating
	}
	if in.Bonus != nil {
		item.Bonus = *in.Bonus
	}

	item.LastModified = s.now()
	if err := s.store.Update(ctx, item); err != nil {
		return zero, err
	}
	return item, nil
}

// Get returns a single item.
func (s *Service) Get(ctx context.Context, id string) (model.ContentItem, error) {
	return s.store.Get(ctx, id)
}

// List returns the filtered page plus the total match count. The "all"
// sentinel and empty strings disable individual filters.
func (s *Service) List(ctx context.Context, f model.ContentFilter) ([]model.ContentItem, int64, error) {
	if f.Type == model.FilterAll {
		f.Type = ""
	}
	if f.Status == model.FilterAll {
		f.Status = ""
	}
	if f.Locale == model.FilterAll {
		f.Locale = ""
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return s.store.List(ctx, f)
}

// Archive transitions the item to archived. Idempotent.
func (s *Service) Archive(ctx context.Context, id string) error {
	return s.store.Archive(ctx, id, s.now())
}

// Delete removes an item permanently. Blog posts are refused: archiving
// is their only exit from the published set.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Type == model.TypePost {
		return ErrArchiveOnly
	}
	return s.store.Delete(ctx, id)
}

// Stats aggregates lifecycle counts for one content type.
func (s *Service) Stats(ctx context.Context, contentType string) (model.ContentStats, error) {
	return s.store.Stats(ctx, contentType)
}
