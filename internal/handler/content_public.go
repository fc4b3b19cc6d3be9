// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vegaplay/vegaplay-go/internal/audit"
	"github.com/vegaplay/vegaplay-go/internal/content"
	"github.com/vegaplay/vegaplay-go/internal/middleware"
	"github.com/vegaplay/vegaplay-go/internal/model"
)

// PublicList lists published items of one content type.
func (h *Handler) PublicList(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := contentFilterFromQuery(r)
		f.Type = contentType
		f.Status = model.StatusPublished

		items, total, err := h.content.List(r.Context(), f)
		if err != nil {
			slog.Error("failed to list content", "type", contentType, "error", err)
			WriteInternalError(w, "Failed to list content")
			return
		}

		WriteSuccess(w, items, pageMeta(int(total), f.Page, f.Limit))
	}
}

// PublicGet returns one published item by id. Drafts and archived
// items are not distinguishable from missing ones.
func (h *Handler) PublicGet(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		item, err := h.content.Get(r.Context(), id)
		if err != nil {
			h.writeContentError(w, err, "get")
			return
		}
		if item.Type != contentType || !item.IsPublished() {
			WriteNotFound(w, "Content not found")
			return
		}

		WriteSuccess(w, item, nil)
	}
}

// TypedCreate creates an item of a fixed content type, ignoring any
// type in the body.
func (h *Handler) TypedCreate(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in content.CreateInput
		if err := decodeJSON(w, r, &in); err != nil {
			WriteBadRequest(w, "Invalid request body", nil)
			return
		}
		in.Type = contentType

		item, err := h.content.Create(r.Context(), in)
		if err != nil {
			h.writeContentError(w, err, "create")
			return
		}

		h.recorder.Record(r.Context(), audit.ContentEvent(
			model.AuditContentCreated, item, middleware.GetUserEmail(r)))

		WriteCreated(w, item)
	}
}

// TypedUpdate updates an item, rejecting ids of a different type.
func (h *Handler) TypedUpdate(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		existing, err := h.content.Get(r.Context(), id)
		if err != nil || existing.Type != contentType {
			WriteNotFound(w, "Content not found")
			return
		}

		h.AdminUpdateContent(w, r)
	}
}

// TypedDelete hard-deletes a casino or game.
func (h *Handler) TypedDelete(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		item, err := h.content.Get(r.Context(), id)
		if err != nil || item.Type != contentType {
			WriteNotFound(w, "Content not found")
			return
		}

		if err := h.content.Delete(r.Context(), id); err != nil {
			h.writeContentError(w, err, "delete")
			return
		}

		h.recorder.Record(r.Context(), audit.ContentEvent(
			model.AuditContentDeleted, item, middleware.GetUserEmail(r)))

		WriteSuccess(w, map[string]string{"id": id, "status": "deleted"}, nil)
	}
}

// BlogDeleteNotAllowed rejects hard deletion of blog posts.
func (h *Handler) BlogDeleteNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST, PUT")
	WriteError(w, http.StatusMethodNotAllowed, "blog_archive_only",
		"Blog posts can only be archived", nil)
}
