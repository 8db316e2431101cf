package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestVideoProxyMissingURL(t *testing.T) {
	h := newTestHandlers("sh", "sh")

	rec := httptest.NewRecorder()
	h.VideoProxy(rec, httptest.NewRequest("GET", "/api/video", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got == "" {
		t.Error("error message missing")
	}
}

func TestVideoProxyRelaysOrigin(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Range") != "bytes=0-99" {
			t.Errorf("origin saw Range = %q", r.Header.Get("Range"))
		}
		w.Header().Set("Content-Range", "bytes 0-99/1000")
		w.WriteHeader(http.StatusPartialContent)
		fmt.Fprint(w, "partial video bytes")
	}))
	defer origin.Close()

	h := newTestHandlers("sh", "sh")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/video?url="+url.QueryEscape(origin.URL), nil)
	req.Header.Set("Range", "bytes=0-99")
	h.VideoProxy(rec, req)

	if rec.Code != http.StatusPartialContent {
		t.Fatalf("status = %d, want 206", rec.Code)
	}
	if rec.Body.String() != "partial video bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Range"); got != "bytes 0-99/1000" {
		t.Errorf("Content-Range = %q", got)
	}
}

func TestVideoProxyUpstreamError(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer origin.Close()

	h := newTestHandlers("sh", "sh")

	rec := httptest.NewRecorder()
	h.VideoProxy(rec, httptest.NewRequest("GET", "/api/video?url="+url.QueryEscape(origin.URL), nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeError(t, rec); got == "" {
		t.Error("error message missing")
	}
}
