// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vegaplay/vegaplay-go/internal/audit"
	"github.com/vegaplay/vegaplay-go/internal/content"
	"github.com/vegaplay/vegaplay-go/internal/middleware"
	"github.com/vegaplay/vegaplay-go/internal/model"
)

// contentFilterFromQuery builds a filter from admin list parameters.
// "all" and empty both mean no constraint.
func contentFilterFromQuery(r *http.Request) model.ContentFilter {
	q := r.URL.Query()
	f := model.ContentFilter{
		Type:     q.Get("type"),
		Status:   q.Get("status"),
		Locale:   q.Get("locale"),
		Provider: q.Get("provider"),
		Page:     parseIntParam(r, "page", 1),
		Limit:    parseIntParam(r, "limit", 20),
	}
	if raw := q.Get("featured"); raw == "true" || raw == "false" {
		v := raw == "true"
		f.Featured = &v
	}
	return f
}

// AdminListContent lists content of every status for the admin panel.
func (h *Handler) AdminListContent(w http.ResponseWriter, r *http.Request) {
	f := contentFilterFromQuery(r)

	items, total, err := h.content.List(r.Context(), f)
	if err != nil {
		slog.Error("failed to list content", "error", err)
		WriteInternalError(w, "Failed to list content")
		return
	}

	WriteSuccess(w, items, pageMeta(int(total), f.Page, f.Limit))
}

// AdminCreateContent creates a content item of any type.
func (h *Handler) AdminCreateContent(w http.ResponseWriter, r *http.Request) {
	var in content.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.content.Create(r.Context(), in)
	if err != nil {
		h.writeContentError(w, err, "create")
		return
	}

	h.recorder.Record(r.Context(), audit.ContentEvent(
		model.AuditContentCreated, item, middleware.GetUserEmail(r)))

	WriteCreated(w, item)
}

// AdminUpdateContent applies a partial update to a content item.
func (h *Handler) AdminUpdateContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in content.UpdateInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.content.Update(r.Context(), id, in)
	if err != nil {
		h.writeContentError(w, err, "update")
		return
	}

	h.recorder.Record(r.Context(), audit.ContentEvent(
		model.AuditContentUpdated, item, middleware.GetUserEmail(r)))

	WriteSuccess(w, item, nil)
}

// ArchiveBlogPost soft-archives a blog post. Archiving an archived
// post succeeds without changing it.
func (h *Handler) ArchiveBlogPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.content.Get(r.Context(), id)
	if err != nil {
		h.writeContentError(w, err, "archive")
		return
	}
	if item.Type != model.TypePost {
		WriteNotFound(w, "Blog post not found")
		return
	}

	if err := h.content.Archive(r.Context(), id); err != nil {
		h.writeContentError(w, err, "archive")
		return
	}

	item.Status = model.StatusArchived
	h.recorder.Record(r.Context(), audit.ContentEvent(
		model.AuditContentArchived, item, middleware.GetUserEmail(r)))

	WriteSuccess(w, map[string]string{"id": id, "status": model.StatusArchived}, nil)
}

// BlogStats returns aggregate counts for blog posts.
func (h *Handler) BlogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.content.Stats(r.Context(), model.TypePost)
	if err != nil {
		slog.Error("failed to compute blog stats", "error", err)
		WriteInternalError(w, "Failed to compute stats")
		return
	}
	WriteSuccess(w, stats, nil)
}

// ListAuditEvents returns the audit trail, newest first.
func (h *Handler) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	page := parseIntParam(r, "page", 1)
	limit := parseIntParam(r, "limit", 50)
	if limit > 200 {
		limit = 200
	}

	events, total, err := h.recorder.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("failed to list audit events", "error", err)
		WriteInternalError(w, "Failed to list audit events")
		return
	}

	WriteSuccess(w, events, pageMeta(int(total), page, limit))
}

// writeContentError maps content service errors to API responses.
func (h *Handler) writeContentError(w http.ResponseWriter, err error, op string) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteBadRequest(w, "Validation failed", map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, content.ErrNotFound):
		WriteNotFound(w, "Content not found")
	case errors.Is(err, content.ErrArchiveOnly):
		WriteError(w, http.StatusMethodNotAllowed, "blog_archive_only",
			"Blog posts can only be archived", nil)
	default:
		slog.Error("content operation failed", "op", op, "error", err)
		WriteInternalError(w, "Content operation failed")
	}
}
