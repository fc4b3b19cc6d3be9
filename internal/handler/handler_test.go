// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/vegaplay/vegaplay-go/internal/audit"
	"github.com/vegaplay/vegaplay-go/internal/auth"
	"github.com/vegaplay/vegaplay-go/internal/config"
	"github.com/vegaplay/vegaplay-go/internal/content"
	"github.com/vegaplay/vegaplay-go/internal/filestore"
	"github.com/vegaplay/vegaplay-go/internal/i18n"
	"github.com/vegaplay/vegaplay-go/internal/mailer"
	"github.com/vegaplay/vegaplay-go/internal/middleware"
	"github.com/vegaplay/vegaplay-go/internal/model"
	"github.com/vegaplay/vegaplay-go/internal/ratelimit"
	"github.com/vegaplay/vegaplay-go/internal/session"
	"github.com/vegaplay/vegaplay-go/internal/store"
	"github.com/vegaplay/vegaplay-go/internal/testutil"
)

var i18nOnce sync.Once

// captureSender records outbound mail instead of delivering it. Setting
// fail makes every Send report a delivery error.
type captureSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail error
}

func (c *captureSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return "", c.fail
	}
	c.sent = append(c.sent, msg)
	return "test-message-id", nil
}

func (c *captureSender) last() (mailer.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return mailer.Message{}, false
	}
	return c.sent[len(c.sent)-1], true
}

type testApp struct {
	t       *testing.T
	handler *Handler
	server  *httptest.Server
	client  *http.Client
	db      *sql.DB
	queries *store.Queries
	sender  *captureSender
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	i18nOnce.Do(func() {
		if err := i18n.Init(testutil.TestLogger()); err != nil {
			t.Fatalf("i18n.Init: %v", err)
		}
	})

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	dataDir := t.TempDir()
	logger := testutil.TestLogger()
	cfg := &config.Config{
		Env:          "development",
		DataDir:      dataDir,
		SiteURL:      "https://vegaplay.example",
		MailFrom:     "no-reply@vegaplay.example",
		ContactInbox: "hola@vegaplay.example",
	}

	recorder := audit.NewRecorder(store.NewAuditStore(db), filestore.NewAuditStore(dataDir), logger)
	svc := content.NewService(content.NewFailover(
		store.NewContentStore(db), filestore.NewContentStore(dataDir), logger))
	sender := &captureSender{}

	h := New(cfg, db, svc, recorder, session.New(db, true), sender, middleware.NewLoginProtection())

	srv := httptest.NewServer(h.Routes(ratelimit.NewMemoryLimiter()))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}

	return &testApp{
		t:       t,
		handler: h,
		server:  srv,
		client:  &http.Client{Jar: jar},
		db:      db,
		queries: store.New(db),
		sender:  sender,
	}
}

func (a *testApp) seedUser(email, password, role string) model.User {
	a.t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		a.t.Fatalf("HashPassword: %v", err)
	}
	u, err := a.queries.CreateUser(context.Background(), model.User{
		Email:         email,
		PasswordHash:  hash,
		Name:          "Test User",
		Role:          role,
		IsActive:      true,
		EmailVerified: true,
	})
	if err != nil {
		a.t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func (a *testApp) do(method, path string, body any) *http.Response {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	if err != nil {
		a.t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.client.Do(req)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (a *testApp) get(path string) *http.Response {
	return a.do(http.MethodGet, path, nil)
}

func (a *testApp) post(path string, body any) *http.Response {
	return a.do(http.MethodPost, path, body)
}

// login authenticates through the API and fails the test on anything
// but a 200.
func (a *testApp) login(email, password string) {
	a.t.Helper()
	resp := a.post("/api/admin/auth/login", LoginRequest{Email: email, Password: password})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		a.t.Fatalf("login %s: status %d, body %s", email, resp.StatusCode, b)
	}
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return b
}

func decodeResponse(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.Unmarshal(readBody(t, resp), out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	decodeResponse(t, resp, &e)
	return e
}
