package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"media-gateway/internal/pipeline"
	"media-gateway/internal/probe"
	"media-gateway/internal/proxy"
	"media-gateway/internal/safeurl"
)

// newTestHandlers wires real components around test binaries. The empty
// blocked set lets loopback test origins through the validator; echo as
// the transcoder turns command lines into response bodies.
func newTestHandlers(ffmpegPath, ffprobePath string) *Handlers {
	return New(
		safeurl.NewValidator(new(safeurl.BlockedNetworkSet)),
		probe.NewInspector(ffprobePath, time.Minute),
		proxy.New(proxy.DefaultTimeout),
		pipeline.New(ffmpegPath),
	)
}

// fakeProbe writes an executable script that ignores its arguments and
// prints the given JSON, standing in for the real probe tool.
func fakeProbe(t *testing.T, output string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\ncat <<'EOF'\n" + output + "\nEOF\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandlers("sh", "sh")

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if !resp.FFmpeg || !resp.FFprobe {
		t.Errorf("tool flags = %v/%v, want true/true", resp.FFmpeg, resp.FFprobe)
	}
}

func TestHealthCheckMissingTools(t *testing.T) {
	h := newTestHandlers("/nonexistent/ffmpeg", "/nonexistent/ffprobe")

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest("GET", "/api/health", nil))

	// Missing tools degrade features but the service itself is up.
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FFmpeg || resp.FFprobe {
		t.Errorf("tool flags = %v/%v, want false/false", resp.FFmpeg, resp.FFprobe)
	}
}

func TestVersion(t *testing.T) {
	h := newTestHandlers("sh", "sh")

	rec := httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest("GET", "/api/version", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info["version"] == "" {
		t.Error("version missing from build info")
	}
}
