// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/auth"
	"github.com/vegaplay/vegaplay-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@vegaplay.example"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data in the database: the default super admin
// and a pair of sample reviews so the API has something to serve.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, model.User{
		Email:         DefaultAdminEmail,
		PasswordHash:  passwordHash,
		Name:          DefaultAdminName,
		Role:          model.RoleSuperAdmin,
		IsActive:      true,
		EmailVerified: true,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	if err := seedContent(ctx, db); err != nil {
		return err
	}

	return nil
}

// seedContent inserts sample casino reviews in both locales.
func seedContent(ctx context.Context, db *sql.DB) error {
	contentStore := NewContentStore(db)
	now := time.Now()

	samples := []model.ContentItem{
		{
			ID:           model.ContentID(model.TypeCasino, now),
			Type:         model.TypeCasino,
			Status:       model.StatusPublished,
			Locale:       model.LocaleES,
			Title:        "Reseña de Casino Estrella",
			Slug:         "resena-de-casino-estrella",
			Author:       DefaultAdminName,
			Summary:      "Bono de bienvenida y giros gratis.",
			Rating:       4.5,
			Bonus:        "100% hasta 200€",
			CreatedAt:    now,
			LastModified: now,
		},
		{
			ID:           model.ContentID(model.TypeCasino, now.Add(time.Millisecond)),
			Type:         model.TypeCasino,
			Status:       model.StatusPublished,
			Locale:       model.LocaleEN,
			Title:        "Casino Estrella Review",
			Slug:         "casino-estrella-review",
			Author:       DefaultAdminName,
			Summary:      "Welcome bonus and free spins.",
			Rating:       4.5,
			Bonus:        "100% up to €200",
			CreatedAt:    now,
			LastModified: now,
		},
	}

	for _, item := range samples {
		if err := contentStore.Create(ctx, item); err != nil {
			return fmt.Errorf("seeding content %s: %w", item.ID, err)
		}
	}

	slog.Info("seeded sample content", "items", len(samples))
	return nil
}
