// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/auth"
	"github.com/vegaplay/vegaplay-go/internal/i18n"
	"github.com/vegaplay/vegaplay-go/internal/middleware"
	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/session"
)

// dummyHash is verified against when the email is unknown, so both
// failure paths cost one slow hash.
var dummyHash = func() string {
	h, err := auth.HashPassword("vegaplay-timing-pad")
	if err != nil {
		panic(err)
	}
	return h
}()

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

func userToResponse(u model.User) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		resp.LastLoginAt = &t
	}
	return resp
}

// Login authenticates an admin user and starts a session. Unknown
// email and wrong password return the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		h.loginFailed(w, r, email)
		return
	}

	if !h.lockout.CheckIPRateLimit(middleware.ClientIP(r)) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited",
			"Too many login attempts, slow down", nil)
		return
	}

	if locked, remaining := h.lockout.IsAccountLocked(email); locked {
		w.Header().Set("Retry-After", formatSeconds(remaining))
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			"Too many failed attempts, try again later", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		// Burn a hash so the miss costs the same as a mismatch.
		_, _ = auth.CheckPassword(req.Password, dummyHash)
		h.loginFailed(w, r, email)
		return
	}

	// Deactivated accounts fail after the hash check so the
	// response and its timing match a wrong password.
	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok || !user.IsActive {
		h.loginFailed(w, r, email)
		return
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				slog.Error("failed to rehash password", "user_id", user.ID, "error", err)
			}
		}
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
		WriteInternalError(w, "Failed to start session")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessions.Put(r.Context(), session.KeyRole, user.Role)
	h.sessions.Put(r.Context(), session.KeyEmail, user.Email)

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		slog.Error("failed to update last login", "user_id", user.ID, "error", err)
	}

	h.lockout.RecordSuccessfulLogin(email)
	h.recorder.Record(r.Context(), model.AuditEvent{
		Action:     model.AuditUserLogin,
		EntityType: "user",
		EntityID:   user.Email,
		User:       user.Email,
		Severity:   model.SeverityInfo,
	})

	WriteSuccess(w, userToResponse(user), nil)
}

func (h *Handler) loginFailed(w http.ResponseWriter, r *http.Request, email string) {
	if email != "" {
		h.lockout.RecordFailedAttempt(email)
	}
	h.recorder.Record(r.Context(), model.AuditEvent{
		Action:     model.AuditLoginFailed,
		EntityType: "user",
		EntityID:   email,
		Severity:   model.SeverityWarning,
	})
	WriteError(w, http.StatusUnauthorized, "invalid_credentials",
		i18n.T(middleware.GetLocale(r), "error.invalid_credentials"), nil)
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r)

	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
		WriteInternalError(w, "Failed to end session")
		return
	}

	h.recorder.Record(r.Context(), model.AuditEvent{
		Action:     model.AuditUserLogout,
		EntityType: "user",
		EntityID:   email,
		User:       email,
		Severity:   model.SeverityInfo,
	})

	WriteSuccess(w, map[string]string{"status": "logged_out"}, nil)
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, userToResponse(*user), nil)
}

func formatSeconds(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
