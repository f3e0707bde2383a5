// If you are AI: This file contains integration tests for server routing and lifecycle.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/flv"
	"flvkit/internal/svc/api"
)

// testConfig serves a temp dir holding one header-only container.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	hdr := append(flv.NewHeader(true, false).Bytes(), 0, 0, 0, 0)
	if err := os.WriteFile(filepath.Join(dir, "empty.flv"), hdr, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Server.MediaDir = dir
	return cfg
}

func TestServerRoutes(t *testing.T) {
	srv, err := New(testConfig(t), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for path, status := range map[string]int{
		"/healthz":   http.StatusOK,
		"/api/files": http.StatusOK,
		"/empty.flv": http.StatusOK,
		"/nope.flv":  http.StatusNotFound,
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != status {
			t.Errorf("%s: expected status %d, got %d", path, status, resp.StatusCode)
		}
	}

	resp, err := http.Get(ts.URL + "/api/files")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var files api.FilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		t.Fatal(err)
	}
	if len(files.Files) != 1 || files.Files[0].Name != "empty" || !files.Files[0].HasAudio {
		t.Errorf("Unexpected listing: %+v", files.Files)
	}
}

func TestServerBadFilter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Remux.Filter = "size +"
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("Expected filter compile error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	// let the kernel pick free ports
	cfg.Server.HealthPort = 0
	cfg.Server.HTTPPort = 0
	srv, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * ShutdownTimeout):
		t.Fatal("Run did not return")
	}
}
