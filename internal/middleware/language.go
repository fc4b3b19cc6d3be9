// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/vegaplay/vegaplay-go/internal/i18n"
)

// Locale resolves the response locale for a request. Explicit ?locale=
// wins, then the Accept-Language header, then the site default.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("locale")
		if !i18n.IsSupported(lang) {
			lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
		}

		ctx := context.WithValue(r.Context(), ContextKeyLocale, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLocale retrieves the resolved locale from the request context.
func GetLocale(r *http.Request) string {
	lang, ok := r.Context().Value(ContextKeyLocale).(string)
	if !ok || lang == "" {
		return "es"
	}
	return lang
}
