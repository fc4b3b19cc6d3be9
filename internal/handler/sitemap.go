// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/vegaplay/vegaplay-go/internal/i18n"
	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/seo"
)

// sitemapPageSize is the per-fetch page size when walking published
// content.
const sitemapPageSize = 100

// Sitemap serves sitemap.xml with hreflang alternates for every
// published item across all locales.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	var items []model.ContentItem
	for page := 1; ; page++ {
		batch, total, err := h.content.List(r.Context(), model.ContentFilter{
			Status: model.StatusPublished,
			Page:   page,
			Limit:  sitemapPageSize,
		})
		if err != nil {
			slog.Error("failed to load content for sitemap", "error", err)
			http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
			return
		}
		items = append(items, batch...)
		if len(batch) == 0 || int64(len(items)) >= total {
			break
		}
	}

	xml, err := seo.GenerateSitemap(h.cfg.SiteURL, i18n.SupportedLanguages, items)
	if err != nil {
		slog.Error("failed to build sitemap", "error", err)
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(xml)
}
