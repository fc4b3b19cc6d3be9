// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vegaplay/vegaplay-go/internal/store"
)

// Scheduler handles periodic maintenance: expired token cleanup and
// audit trail trimming.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins running them.
func (s *Scheduler) Start() error {
	// Hourly: drop email tokens past their expiry.
	_, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.purgeExpiredTokens(); err != nil {
			s.logger.Error("failed to purge expired tokens", "error", err)
		}
	})
	if err != nil {
		return err
	}

	// Daily: re-trim the audit trail in case appends raced the cap.
	_, err = s.cron.AddFunc("30 3 * * *", func() {
		if err := s.trimAuditTrail(); err != nil {
			s.logger.Error("failed to trim audit trail", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeExpiredTokens() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	queries := store.New(s.db)
	purged, err := queries.PurgeEmailTokens(ctx, time.Now())
	if err != nil {
		return err
	}
	if purged > 0 {
		s.logger.Info("purged expired email tokens", "count", purged)
	}
	return nil
}

func (s *Scheduler) trimAuditTrail() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	audits := store.NewAuditStore(s.db)
	trimmed, err := audits.Trim(ctx)
	if err != nil {
		return err
	}
	if trimmed > 0 {
		s.logger.Info("trimmed audit trail", "removed", trimmed)
	}
	return nil
}
