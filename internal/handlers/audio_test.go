package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStreamAudioMissingIndex(t *testing.T) {
	h := newTestHandlers("echo", "sh")

	rec := httptest.NewRecorder()
	h.StreamAudio(rec, httptest.NewRequest("GET", "/api/audio?url=http://203.0.113.7/a.mkv", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got != "No audio track index provided" {
		t.Errorf("error = %q", got)
	}
}

func TestStreamAudioExtraction(t *testing.T) {
	h := newTestHandlers("echo", "sh")

	rec := httptest.NewRecorder()
	h.StreamAudio(rec, httptest.NewRequest("GET", "/api/audio?url=http://203.0.113.7/a.mkv&index=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("Content-Type = %q, want audio/mpeg", got)
	}

	body := rec.Body.String()
	for _, want := range []string{"-map 0:1", "-c:a libmp3lame", "-b:a 192k", "-f mp3"} {
		if !strings.Contains(body, want) {
			t.Errorf("command %q missing %q", body, want)
		}
	}
}
