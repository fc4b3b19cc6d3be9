// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vegaplay/vegaplay-go/internal/middleware"
	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/ratelimit"
)

// Routes builds the full router: public API, account flows, and the
// admin surface.
func (h *Handler) Routes(limiter ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(h.cfg.IsDevelopment()))
	r.Use(h.sessions.LoadAndSave)
	r.Use(middleware.LoadUser(h.sessions, h.db))
	r.Use(middleware.Locale)

	r.Get("/api/health", h.Health)
	r.Get("/api/health/live", h.Liveness)
	r.Get("/api/health/ready", h.Readiness)
	r.Get("/api/sitemap.xml", h.Sitemap)

	// Account flows, throttled per route class.
	r.Group(func(r chi.Router) {
		r.With(middleware.RateLimit(limiter, ratelimit.ClassRegister)).
			Post("/api/auth/register", h.Register)
		r.With(middleware.RateLimit(limiter, ratelimit.ClassAuth)).
			Post("/api/auth/reset-password", h.RequestPasswordReset)
		r.With(middleware.RateLimit(limiter, ratelimit.ClassAuth)).
			Post("/api/auth/reset-password/confirm", h.ConfirmPasswordReset)
		verify := r.With(middleware.RateLimit(limiter, ratelimit.ClassAuth))
		verify.Post("/api/auth/verify-email", h.VerifyEmail)
		verify.Get("/api/auth/verify-email", h.VerifyEmail)
	})

	r.With(middleware.RateLimit(limiter, ratelimit.ClassAPI)).
		Post("/api/contact", h.Contact)

	// Admin surface.
	r.Route("/api/admin", func(r chi.Router) {
		r.With(middleware.RateLimit(limiter, ratelimit.ClassAuth)).
			Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleViewer, h.recorder))
			r.Post("/auth/logout", h.Logout)
			r.Get("/auth/me", h.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleEditor, h.recorder))
			r.Get("/content", h.AdminListContent)
			r.Post("/content", h.AdminCreateContent)
			r.Put("/content/{id}", h.AdminUpdateContent)
			r.Post("/blog/{id}/archive", h.ArchiveBlogPost)
			r.Get("/blog/stats", h.BlogStats)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin, h.recorder))
			r.Get("/audit", h.ListAuditEvents)
		})
	})

	// Public content API.
	r.Route("/api/v2", func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, ratelimit.ClassAPI))

		sections := []struct {
			path        string
			contentType string
		}{
			{"casinos", model.TypeCasino},
			{"games", model.TypeGame},
			{"blog", model.TypePost},
		}
		for _, s := range sections {
			s := s
			r.Route("/"+s.path, func(r chi.Router) {
				r.Get("/", h.PublicList(s.contentType))
				r.Get("/{id}", h.PublicGet(s.contentType))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleEditor, h.recorder))
					r.Post("/", h.TypedCreate(s.contentType))
					r.Put("/{id}", h.TypedUpdate(s.contentType))
					r.Patch("/{id}", h.TypedUpdate(s.contentType))
				})

				if s.contentType == model.TypePost {
					r.Delete("/{id}", h.BlogDeleteNotAllowed)
				} else {
					r.With(middleware.RequireRole(model.RoleAdmin, h.recorder)).
						Delete("/{id}", h.TypedDelete(s.contentType))
				}
			})
		}
	})

	return r
}
