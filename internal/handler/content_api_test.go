// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/vegaplay/vegaplay-go/internal/content"
	"github.com/vegaplay/vegaplay-go/internal/model"
)

type itemResponse struct {
	Data model.ContentItem `json:"data"`
}

type listResponse struct {
	Data []model.ContentItem `json:"data"`
	Meta *Meta               `json:"meta"`
}

func (a *testApp) createContent(in content.CreateInput) model.ContentItem {
	a.t.Helper()
	resp := a.post("/api/admin/content", in)
	if resp.StatusCode != http.StatusCreated {
		a.t.Fatalf("create content: %d, body %s", resp.StatusCode, readBody(a.t, resp))
	}
	var body itemResponse
	decodeResponse(a.t, resp, &body)
	return body.Data
}

func TestAdminContent_AuthFailuresAreUniform(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("viewer@vegaplay.es", "segura-12345", model.RoleViewer)

	resp := app.get("/api/admin/content")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: %d, want 401", resp.StatusCode)
	}
	anonBody := readBody(t, resp)

	app.login("viewer@vegaplay.es", "segura-12345")
	resp = app.get("/api/admin/content")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("viewer on editor route: %d, want 401", resp.StatusCode)
	}
	viewerBody := readBody(t, resp)

	if string(anonBody) != string(viewerBody) {
		t.Errorf("missing session and insufficient role produce different bodies:\n%s\n%s",
			anonBody, viewerBody)
	}
}

func TestAdminContent_CRUD(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("editor@vegaplay.es", "segura-12345", model.RoleEditor)
	app.login("editor@vegaplay.es", "segura-12345")

	item := app.createContent(content.CreateInput{
		Type:   model.TypeCasino,
		Title:  "Gran Casino Madrid",
		Author: "lucia",
		Rating: 4.5,
		Bonus:  "100% hasta 200€",
		Body:   "Una **reseña** honesta.",
	})
	if item.Status != model.StatusDraft {
		t.Errorf("new item status = %q, want draft", item.Status)
	}
	if item.Slug != "gran-casino-madrid" {
		t.Errorf("slug = %q", item.Slug)
	}

	published := model.StatusPublished
	resp := app.do(http.MethodPut, "/api/admin/content/"+item.ID, content.UpdateInput{
		Status: &published,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: %d, body %s", resp.StatusCode, readBody(t, resp))
	}
	var updated itemResponse
	decodeResponse(t, resp, &updated)
	if updated.Data.Status != model.StatusPublished {
		t.Errorf("status = %q after publish", updated.Data.Status)
	}

	resp = app.do(http.MethodPut, "/api/admin/content/casino-999", content.UpdateInput{Status: &published})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("update missing: %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	resp = app.get("/api/admin/content?type=casino&status=published")
	var list listResponse
	decodeResponse(t, resp, &list)
	if len(list.Data) != 1 || list.Meta.Total != 1 {
		t.Errorf("list = %d items, total %d", len(list.Data), list.Meta.Total)
	}
}

func TestBlogArchive_IdempotentAndStats(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("editor@vegaplay.es", "segura-12345", model.RoleEditor)
	app.login("editor@vegaplay.es", "segura-12345")

	post := app.createContent(content.CreateInput{
		Type: model.TypePost, Title: "Guía de ruleta", Author: "marco",
		Status: model.StatusPublished,
	})
	casino := app.createContent(content.CreateInput{
		Type: model.TypeCasino, Title: "Casino Prueba", Author: "marco",
	})

	for i := 0; i < 2; i++ {
		resp := app.post("/api/admin/blog/"+post.ID+"/archive", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("archive attempt %d: %d, body %s", i+1, resp.StatusCode, readBody(t, resp))
		}
		resp.Body.Close()
	}

	// Only posts can go through the blog archive route.
	resp := app.post("/api/admin/blog/"+casino.ID+"/archive", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("archiving a casino: %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	resp = app.get("/api/admin/blog/stats")
	var stats struct {
		Data model.ContentStats `json:"data"`
	}
	decodeResponse(t, resp, &stats)
	want := model.ContentStats{Total: 1, Archived: 1}
	if stats.Data != want {
		t.Errorf("stats = %+v, want %+v", stats.Data, want)
	}
}

func TestPublicContent_OnlyPublishedVisible(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("editor@vegaplay.es", "segura-12345", model.RoleEditor)
	app.login("editor@vegaplay.es", "segura-12345")

	pub := app.createContent(content.CreateInput{
		Type: model.TypeCasino, Title: "Casino Público", Author: "lucia",
		Status: model.StatusPublished,
	})
	draft := app.createContent(content.CreateInput{
		Type: model.TypeCasino, Title: "Casino Borrador", Author: "lucia",
	})

	resp := app.get("/api/v2/casinos")
	var list listResponse
	decodeResponse(t, resp, &list)
	if len(list.Data) != 1 || list.Data[0].ID != pub.ID {
		t.Fatalf("public list = %+v, want only the published casino", list.Data)
	}

	resp = app.get("/api/v2/casinos/" + pub.ID)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("published get: %d", resp.StatusCode)
	}
	resp.Body.Close()

	// A draft, a missing id and a type mismatch all 404 identically.
	draftResp := app.get("/api/v2/casinos/" + draft.ID)
	draftBody := readBody(t, draftResp)
	missingResp := app.get("/api/v2/casinos/casino-123456")
	missingBody := readBody(t, missingResp)
	wrongTypeResp := app.get("/api/v2/games/" + pub.ID)
	wrongTypeBody := readBody(t, wrongTypeResp)

	for name, code := range map[string]int{
		"draft": draftResp.StatusCode, "missing": missingResp.StatusCode, "wrong type": wrongTypeResp.StatusCode,
	} {
		if code != http.StatusNotFound {
			t.Errorf("%s get: %d, want 404", name, code)
		}
	}
	if string(draftBody) != string(missingBody) || string(missingBody) != string(wrongTypeBody) {
		t.Errorf("404 bodies differ:\n%s\n%s\n%s", draftBody, missingBody, wrongTypeBody)
	}
}

func TestTypedEndpoints_DeleteRules(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("admin@vegaplay.es", "segura-12345", model.RoleAdmin)
	app.login("admin@vegaplay.es", "segura-12345")

	resp := app.post("/api/v2/games", content.CreateInput{
		Title: "Starburst", Author: "lucia", Provider: "NetEnt",
		Status: model.StatusPublished,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("typed create: %d, body %s", resp.StatusCode, readBody(t, resp))
	}
	var game itemResponse
	decodeResponse(t, resp, &game)
	if game.Data.Type != model.TypeGame {
		t.Fatalf("typed create forced type %q", game.Data.Type)
	}

	post := app.createContent(content.CreateInput{
		Type: model.TypePost, Title: "No me borres", Author: "lucia",
	})

	resp = app.do(http.MethodDelete, "/api/v2/blog/"+post.ID, nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("blog delete: %d, want 405", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); allow == "" {
		t.Error("405 without Allow header")
	}
	if e := decodeError(t, resp); e.Error.Code != "blog_archive_only" {
		t.Errorf("code = %q, want blog_archive_only", e.Error.Code)
	}

	resp = app.do(http.MethodDelete, "/api/v2/games/"+game.Data.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("game delete: %d, body %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = app.get("/api/v2/games/" + game.Data.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted game still served: %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAuditTrail_AdminOnly(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("editor@vegaplay.es", "segura-12345", model.RoleEditor)
	app.seedUser("admin@vegaplay.es", "segura-12345", model.RoleAdmin)

	app.login("editor@vegaplay.es", "segura-12345")
	app.createContent(content.CreateInput{
		Type: model.TypePost, Title: "Entrada auditada", Author: "editor",
	})

	resp := app.get("/api/admin/audit")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("editor reading audit: %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	app.login("admin@vegaplay.es", "segura-12345")
	resp = app.get("/api/admin/audit")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin reading audit: %d", resp.StatusCode)
	}
	var events struct {
		Data []model.AuditEvent `json:"data"`
	}
	decodeResponse(t, resp, &events)
	if len(events.Data) == 0 {
		t.Fatal("audit trail empty")
	}
	// Newest first: the editor's denied audit read is more recent than
	// the content creation.
	var sawCreate bool
	for _, ev := range events.Data {
		if ev.Action == model.AuditContentCreated && ev.EntityName == "Entrada auditada" {
			sawCreate = true
		}
	}
	if !sawCreate {
		t.Error("content creation missing from audit trail")
	}
	if events.Data[0].Action == model.AuditContentCreated {
		t.Error("audit trail not newest first")
	}
}
