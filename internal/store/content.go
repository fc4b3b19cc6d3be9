// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/content"
	"github.com/vegaplay/vegaplay-go/internal/model"
)

// ContentStore is the SQLite-backed primary content backend.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates the primary content store.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, type, status, locale, title, slug, author, summary, body, body_html,
	featured, provider, rating, bonus, created_at, last_modified`

func scanContent(scanner interface{ Scan(...any) error }) (model.ContentItem, error) {
	var c model.ContentItem
	err := scanner.Scan(&c.ID, &c.Type, &c.Status, &c.Locale, &c.Title, &c.Slug,
		&c.Author, &c.Summary, &c.Body, &c.BodyHTML, &c.Featured, &c.Provider,
		&c.Rating, &c.Bonus, &c.CreatedAt, &c.LastModified)
	return c, err
}

// buildWhere translates a filter into a WHERE clause and its arguments.
func buildWhere(f model.ContentFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, f.Type)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Locale != "" {
		conds = append(conds, "locale = ?")
		args = append(args, f.Locale)
	}
	if f.Provider != "" {
		conds = append(conds, "provider = ?")
		args = append(args, f.Provider)
	}
	if f.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, *f.Featured)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List implements content.Store.
func (s *ContentStore) List(ctx context.Context, f model.ContentFilter) ([]model.ContentItem, int64, error) {
	where, args := buildWhere(f)

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting content: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	query := "SELECT " + contentColumns + " FROM content" + where +
		" ORDER BY last_modified DESC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, f.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing content: %w", err)
	}
	defer rows.Close()

	var items []model.ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning content: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing content: %w", err)
	}
	return items, total, nil
}

// Get implements content.Store.
func (s *ContentStore) Get(ctx context.Context, id string) (model.ContentItem, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM content WHERE id = ?", id)
	item, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContentItem{}, content.ErrNotFound
	}
	if err != nil {
		return model.ContentItem{}, fmt.Errorf("getting content: %w", err)
	}
	return item, nil
}

// Create implements content.Store.
func (s *ContentStore) Create(ctx context.Context, c model.ContentItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content (`+contentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Type, c.Status, c.Locale, c.Title, c.Slug, c.Author, c.Summary,
		c.Body, c.BodyHTML, c.Featured, c.Provider, c.Rating, c.Bonus,
		c.CreatedAt, c.LastModified)
	if err != nil {
		if isUniqueViolation(err) {
			return content.ErrDuplicateID
		}
		return fmt.Errorf("creating content: %w", err)
	}
	return nil
}

// Update implements content.Store.
func (s *ContentStore) Update(ctx context.Context, c model.ContentItem) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE content SET status = ?, locale = ?, title = ?, slug = ?, author = ?,
			summary = ?, body = ?, body_html = ?, featured = ?, provider = ?,
			rating = ?, bonus = ?, last_modified = ?
		WHERE id = ?`,
		c.Status, c.Locale, c.Title, c.Slug, c.Author, c.Summary, c.Body,
		c.BodyHTML, c.Featured, c.Provider, c.Rating, c.Bonus, c.LastModified, c.ID)
	if err != nil {
		return fmt.Errorf("updating content: %w", err)
	}
	return requireRow(res)
}

// Archive implements content.Store. Re-archiving is a no-op success.
func (s *ContentStore) Archive(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE content SET status = ?, last_modified = CASE WHEN status = ? THEN last_modified ELSE ? END
		 WHERE id = ?`,
		model.StatusArchived, model.StatusArchived, at, id)
	if err != nil {
		return fmt.Errorf("archiving content: %w", err)
	}
	return requireRow(res)
}

// Delete implements content.Store.
func (s *ContentStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting content: %w", err)
	}
	return requireRow(res)
}

// Stats implements content.Store.
func (s *ContentStore) Stats(ctx context.Context, contentType string) (model.ContentStats, error) {
	var stats model.ContentStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'published' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'archived' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN featured = 1 THEN 1 ELSE 0 END), 0)
		FROM content WHERE type = ?`, contentType).
		Scan(&stats.Total, &stats.Published, &stats.Draft, &stats.Archived, &stats.Featured)
	if err != nil {
		return model.ContentStats{}, fmt.Errorf("counting content stats: %w", err)
	}
	return stats, nil
}

// requireRow maps a zero-row mutation to content.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return content.ErrNotFound
	}
	return nil
}
