package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"media-reel/internal/gallery"
	"media-reel/internal/handlers"
	"media-reel/internal/startup"
)

func writeMedia(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func testConfig(root string) *startup.Config {
	return &startup.Config{
		MediaDir:        root,
		ScanTimeout:     time.Second,
		UnixFutureSkew:  time.Hour,
		SidecarName:     gallery.DefaultSidecarName,
		HeroDir:         gallery.DefaultHeroDir,
		LogHealthChecks: false,
		Location:        time.UTC,
		Categories:      []gallery.Category{{Key: "trips", Title: "Trips"}},
	}
}

func newTestServer(t *testing.T, cfg *startup.Config) *httptest.Server {
	t.Helper()
	h := handlers.New(newIndexer(cfg), cfg)
	srv := httptest.NewServer(wrapHandler(setupRouter(h), cfg))
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutes(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, root, map[string]string{
		"trips/2023-03-15_beach.jpg": "x",
		"trips/meta.json":            `{"2023-03-15_beach.jpg": {"blurb": "Sunset"}}`,
		"hero/intro.mp4":             "x",
		"hero/intro.jpg":             "x",
	})
	srv := newTestServer(t, testConfig(root))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/gallery", http.StatusOK},
		{http.MethodHead, "/api/gallery", http.StatusOK},
		{http.MethodPost, "/api/gallery", http.StatusMethodNotAllowed},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/livez", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/version", http.StatusOK},
		{http.MethodGet, "/api/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, http.NoBody)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestGalleryEndpoint(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, root, map[string]string{
		"trips/2023-03-15_beach.jpg": "x",
		"trips/meta.json":            `{"2023-03-15_beach.jpg": {"blurb": "Sunset"}}`,
		"hero/intro.mp4":             "x",
		"hero/intro.jpg":             "x",
	})
	srv := newTestServer(t, testConfig(root))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/gallery", http.NoBody)
	req.Header.Set("Accept-Encoding", "identity")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}

	var g gallery.Gallery
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Rows) != 1 || len(g.Rows[0].Items) != 1 {
		t.Fatalf("rows = %+v", g.Rows)
	}
	item := g.Rows[0].Items[0]
	if item.Title != "Mar 15, 2023" || item.Blurb != "Sunset" {
		t.Errorf("item = %+v", item)
	}
	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	if item.DateMs != want {
		t.Errorf("DateMs = %d, want %d", item.DateMs, want)
	}
	if g.Hero == nil || g.Hero.Src != "/hero/intro.mp4" || g.Hero.Poster != "/hero/intro.jpg" || g.Hero.Fit != "cover" {
		t.Errorf("hero = %+v", g.Hero)
	}
}

func TestGalleryEndpointMissingRoot(t *testing.T) {
	srv := newTestServer(t, testConfig(filepath.Join(t.TempDir(), "missing")))

	resp, err := http.Get(srv.URL + "/api/gallery")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Failed to read gallery" {
		t.Errorf("error = %q", body["error"])
	}

	ready, err := http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatal(err)
	}
	ready.Body.Close()
	if ready.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("readyz status = %d, want 503", ready.StatusCode)
	}
}

func TestIndexCommand(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, root, map[string]string{
		"pets/VID_20230704_120000.mp4": "x",
		"pets/VID_20230704_120000.jpg": "x",
	})
	configPath := filepath.Join(t.TempDir(), "reel.toml")
	writeMedia(t, filepath.Dir(configPath), map[string]string{
		"reel.toml": "timezone = \"UTC\"\n[[categories]]\nkey = \"pets\"\ntitle = \"Pets\"\n",
	})
	t.Setenv("MEDIA_DIR", root)
	t.Setenv("CONFIG_FILE", "")

	tests := []struct {
		name       string
		args       []string
		wantIndent bool
	}{
		{"compact", []string{"index", "--config", configPath}, false},
		{"pretty", []string{"index", "--pretty", "--config", configPath}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if got := strings.Contains(out.String(), "\n  "); got != tt.wantIndent {
				t.Errorf("indented = %v, want %v:\n%s", got, tt.wantIndent, out.String())
			}

			var g gallery.Gallery
			if err := json.Unmarshal(out.Bytes(), &g); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if len(g.Rows) != 1 || g.Rows[0].Title != "Pets" || len(g.Rows[0].Items) != 2 {
				t.Fatalf("rows = %+v", g.Rows)
			}
			var item gallery.Item
			for _, it := range g.Rows[0].Items {
				if it.Kind == "video" {
					item = it
				}
			}
			if item.Poster != "/gallery/pets/VID_20230704_120000.jpg" || item.Title != "Jul 4, 2023" {
				t.Errorf("item = %+v", item)
			}
		})
	}
}

func TestIndexCommandMissingRoot(t *testing.T) {
	t.Setenv("MEDIA_DIR", filepath.Join(t.TempDir(), "missing"))
	t.Setenv("CONFIG_FILE", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"index"})
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want error for a missing media root")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "media-reel "+startup.Version) {
		t.Errorf("output = %q", out.String())
	}
}
