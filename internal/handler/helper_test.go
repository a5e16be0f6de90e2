// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/auth"
	"github.com/flatcms/flatcms/internal/repo"
	"github.com/flatcms/flatcms/internal/session"
	"github.com/flatcms/flatcms/internal/statictext"
	"github.com/flatcms/flatcms/internal/store"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "admin123"
)

// testApp wires a full router over a temp data directory and serves
// it through httptest, with a cookie jar so sessions persist across
// requests like a real browser.
type testApp struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client

	events *repo.Events
	blocks *repo.ContentBlocks
	audit  *audit.Log
	texts  *statictext.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}

	admin, err := auth.NewAdmin(testAdminUser, "", testAdminPassword)
	if err != nil {
		t.Fatalf("auth.NewAdmin error: %v", err)
	}

	publicDir := t.TempDir()
	for _, name := range []string{"index.html", "login.html", "dashboard.html", "archive.html", "404.html"} {
		if err := os.WriteFile(filepath.Join(publicDir, name), []byte("<html>"+name+"</html>"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	app := &testApp{
		t:      t,
		events: repo.NewEvents(s),
		blocks: repo.NewContentBlocks(s),
		audit:  audit.New(s),
		texts:  statictext.Open(s),
	}

	router := NewRouter(RouterConfig{
		SessionManager: session.New(true),
		Admin:          admin,
		Events:         app.events,
		Blocks:         app.blocks,
		Audit:          app.audit,
		Texts:          app.texts,
		PublicDir:      publicDir,
	})

	app.server = httptest.NewServer(router)
	t.Cleanup(app.server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New error: %v", err)
	}
	app.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return app
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out (when out is non-nil).
func (a *testApp) do(method, path string, body, out any) *http.Response {
	a.t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshaling request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, a.server.URL+path, reqBody)
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
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			a.t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}
	return resp
}

// login authenticates the test client's session as the admin.
func (a *testApp) login() {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		a.t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
}

// createEvent creates an event through the API and returns its id.
func (a *testApp) createEvent(title, date string) string {
	a.t.Helper()
	var created map[string]any
	resp := a.do(http.MethodPost, "/api/events", map[string]string{"title": title, "date": date}, &created)
	if resp.StatusCode != http.StatusCreated {
		a.t.Fatalf("create event status = %d, want 201", resp.StatusCode)
	}
	id, _ := created["id"].(string)
	if id == "" {
		a.t.Fatalf("created event has no id: %v", created)
	}
	return id
}

func eventIDs(events []map[string]any) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, fmt.Sprintf("%v", e["id"]))
	}
	return ids
}
