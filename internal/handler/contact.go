// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/vegaplay/vegaplay-go/internal/i18n"
	"github.com/vegaplay/vegaplay-go/internal/mailer"
	"github.com/vegaplay/vegaplay-go/internal/middleware"
)

const maxContactBodyLength = 5000

// ContactRequest is the contact form body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact forwards a contact form submission to the site inbox.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	details := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "is required"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		details["email"] = "invalid email address"
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		details["message"] = "is required"
	} else if len(msg) > maxContactBodyLength {
		details["message"] = "too long"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Validation failed", details)
		return
	}

	out := mailer.ContactMessage(h.cfg.ContactInbox, strings.TrimSpace(req.Name), req.Email, msg)
	if _, err := h.sender.Send(r.Context(), out); err != nil {
		slog.Error("failed to forward contact message", "error", err)
		WriteInternalError(w, "Failed to deliver message")
		return
	}

	WriteSuccess(w, map[string]string{
		"message": i18n.T(middleware.GetLocale(r), "contact.received"),
	}, nil)
}
