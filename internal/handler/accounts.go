// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/auth"
	"github.com/vegaplay/vegaplay-go/internal/i18n"
	"github.com/vegaplay/vegaplay-go/internal/mailer"
	"github.com/vegaplay/vegaplay-go/internal/middleware"
	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/store"
)

const minPasswordLength = 8

// RegisterRequest is the account registration request body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a new viewer account and mails a verification link.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	details := map[string]string{}
	if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "invalid email address"
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = "must be at least 8 characters"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Validation failed", details)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		WriteInternalError(w, "Failed to create account")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         model.RoleViewer,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			WriteError(w, http.StatusConflict, "email_taken",
				i18n.T(middleware.GetLocale(r), "error.email_taken"), nil)
			return
		}
		slog.Error("failed to create user", "error", err)
		WriteInternalError(w, "Failed to create account")
		return
	}

	emailSent := h.sendAccountToken(r, user, model.TokenPurposeVerify)

	h.recorder.Record(r.Context(), model.AuditEvent{
		Action:     model.AuditUserRegistered,
		EntityType: "user",
		EntityID:   user.Email,
		User:       user.Email,
		Severity:   model.SeverityInfo,
	})

	WriteCreated(w, map[string]any{
		"user":       userToResponse(user),
		"email_sent": emailSent,
		"message":    i18n.T(middleware.GetLocale(r), "account.registered"),
	})
}

// ResetPasswordRequest is the reset request body.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset mails a reset link. The response is identical
// whether or not the email is registered.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if user, err := h.queries.GetUserByEmail(r.Context(), email); err == nil {
		h.sendAccountToken(r, user, model.TokenPurposeReset)
	}

	WriteSuccess(w, map[string]string{
		"message": i18n.T(middleware.GetLocale(r), "account.reset_sent"),
	}, nil)
}

// ConfirmPasswordRequest is the reset confirmation body.
type ConfirmPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ConfirmPasswordReset redeems a reset token and sets a new password.
func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.Password) < minPasswordLength {
		WriteBadRequest(w, "Validation failed", map[string]string{
			"password": "must be at least 8 characters",
		})
		return
	}

	token, ok := h.redeemToken(w, r, req.Token, model.TokenPurposeReset)
	if !ok {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		WriteInternalError(w, "Failed to update password")
		return
	}
	if err := h.queries.UpdateUserPassword(r.Context(), token.UserID, hash); err != nil {
		slog.Error("failed to update password", "user_id", token.UserID, "error", err)
		WriteInternalError(w, "Failed to update password")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), token.UserID)
	if err == nil {
		h.recorder.Record(r.Context(), model.AuditEvent{
			Action:     model.AuditPasswordReset,
			EntityType: "user",
			EntityID:   user.Email,
			User:       user.Email,
			Severity:   model.SeverityInfo,
		})
	}

	WriteSuccess(w, map[string]string{
		"message": i18n.T(middleware.GetLocale(r), "account.password_updated"),
	}, nil)
}

// VerifyEmailRequest is the verification body.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// VerifyEmail redeems a verification token and marks the email verified.
// The token arrives in the JSON body on POST, or as ?token= when the user
// follows the emailed link directly.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if r.Method == http.MethodGet {
		req.Token = r.URL.Query().Get("token")
	} else if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	token, ok := h.redeemToken(w, r, req.Token, model.TokenPurposeVerify)
	if !ok {
		return
	}

	if err := h.queries.MarkEmailVerified(r.Context(), token.UserID); err != nil {
		slog.Error("failed to mark email verified", "user_id", token.UserID, "error", err)
		WriteInternalError(w, "Failed to verify email")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), token.UserID)
	if err == nil {
		h.recorder.Record(r.Context(), model.AuditEvent{
			Action:     model.AuditEmailVerified,
			EntityType: "user",
			EntityID:   user.Email,
			User:       user.Email,
			Severity:   model.SeverityInfo,
		})
	}

	WriteSuccess(w, map[string]string{
		"message": i18n.T(middleware.GetLocale(r), "account.email_verified"),
	}, nil)
}

// redeemToken looks up and consumes a single-use token. Expired,
// consumed, and unknown tokens all fail the same way.
func (h *Handler) redeemToken(w http.ResponseWriter, r *http.Request, raw, purpose string) (model.EmailToken, bool) {
	if raw == "" {
		h.tokenInvalid(w, r)
		return model.EmailToken{}, false
	}

	token, err := h.queries.GetEmailToken(r.Context(), auth.HashToken(raw), purpose)
	if err != nil {
		h.tokenInvalid(w, r)
		return model.EmailToken{}, false
	}
	if !token.Usable(time.Now()) {
		h.tokenInvalid(w, r)
		return model.EmailToken{}, false
	}
	if err := h.queries.ConsumeEmailToken(r.Context(), token.ID, time.Now()); err != nil {
		// Lost the race to another redemption.
		h.tokenInvalid(w, r)
		return model.EmailToken{}, false
	}
	return token, true
}

func (h *Handler) tokenInvalid(w http.ResponseWriter, r *http.Request) {
	WriteBadRequest(w, i18n.T(middleware.GetLocale(r), "error.token_invalid"), nil)
}

// sendAccountToken issues a fresh token and mails the matching link.
// Delivery failures are logged, not surfaced as errors; the return
// value reports whether the mail was handed to the transport.
func (h *Handler) sendAccountToken(r *http.Request, user model.User, purpose string) bool {
	raw, hash, err := auth.NewOpaqueToken()
	if err != nil {
		slog.Error("failed to generate token", "purpose", purpose, "error", err)
		return false
	}

	ttl := model.VerifyTokenTTL
	if purpose == model.TokenPurposeReset {
		ttl = model.ResetTokenTTL
	}
	now := time.Now()
	err = h.queries.CreateEmailToken(r.Context(), model.EmailToken{
		UserID:    user.ID,
		TokenHash: hash,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		slog.Error("failed to store token", "purpose", purpose, "error", err)
		return false
	}

	locale := middleware.GetLocale(r)
	var msg mailer.Message
	switch purpose {
	case model.TokenPurposeReset:
		link := h.cfg.SiteURL + "/" + locale + "/cuenta/restablecer?token=" + raw
		msg = mailer.PasswordResetMessage(user.Email, locale, link)
	default:
		link := h.cfg.SiteURL + "/" + locale + "/cuenta/verificar?token=" + raw
		msg = mailer.VerifyEmailMessage(user.Email, locale, link)
	}

	if _, err := h.sender.Send(r.Context(), msg); err != nil {
		slog.Error("failed to send email", "purpose", purpose, "to", user.Email, "error", err)
		return false
	}
	return true
}
