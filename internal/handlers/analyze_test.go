package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"media-gateway/internal/pipeline"
	"media-gateway/internal/probe"
	"media-gateway/internal/proxy"
	"media-gateway/internal/safeurl"
)

const sampleProbeJSON = `{
  "format": {
    "filename": "http://203.0.113.7/path/movie.mkv",
    "format_name": "matroska,webm",
    "duration": "4330.500000",
    "size": "1073741824",
    "bit_rate": "1983000"
  },
  "streams": [
    {
      "index": 0,
      "codec_type": "video",
      "codec_name": "h264",
      "width": 1920,
      "height": 1080,
      "r_frame_rate": "30000/1001",
      "bit_rate": "1500000"
    },
    {
      "index": 1,
      "codec_type": "audio",
      "codec_name": "aac",
      "channels": 6,
      "sample_rate": "48000",
      "tags": {"language": "eng", "title": "Surround"},
      "disposition": {"default": 1}
    },
    {
      "index": 2,
      "codec_type": "subtitle",
      "codec_name": "subrip",
      "tags": {"language": "eng"},
      "disposition": {"default": 0, "forced": 0}
    }
  ]
}`

func postAnalyze(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.Analyze(rec, req)
	return rec
}

func TestAnalyzeMissingURL(t *testing.T) {
	h := newTestHandlers("sh", "sh")

	for _, body := range []string{"", "{}", `{"url":""}`, "not json"} {
		rec := postAnalyze(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		if got := decodeError(t, rec); got != "No URL provided" {
			t.Errorf("body %q: error = %q", body, got)
		}
	}
}

func TestAnalyzeBlockedURL(t *testing.T) {
	h := New(
		safeurl.NewValidator(safeurl.DefaultBlockedNetworks()),
		probe.NewInspector("sh", time.Minute),
		proxy.New(proxy.DefaultTimeout),
		pipeline.New("sh"),
	)

	rec := postAnalyze(t, h, `{"url":"http://127.0.0.1/secret.mkv"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got != safeurl.ErrBlockedNetwork.Error() {
		t.Errorf("error = %q", got)
	}
}

func TestAnalyzeProbeUnavailable(t *testing.T) {
	h := newTestHandlers("sh", "/nonexistent/ffprobe")

	rec := postAnalyze(t, h, `{"url":"http://203.0.113.7/movie.mkv"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeError(t, rec); !strings.Contains(got, "ffprobe") {
		t.Errorf("error = %q, want mention of ffprobe", got)
	}
}

func TestAnalyzeProbeFailure(t *testing.T) {
	// sh -v quiet ... exits non-zero: the URL did not yield readable media,
	// which is the caller's problem and must surface as a 400, not a 500.
	h := newTestHandlers("sh", "sh")

	rec := postAnalyze(t, h, `{"url":"http://203.0.113.7/movie.mkv"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); !strings.Contains(got, "Could not fetch media information") {
		t.Errorf("error = %q", got)
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	h := newTestHandlers("sh", fakeProbe(t, sampleProbeJSON))

	rec := postAnalyze(t, h, `{"url":"http://203.0.113.7/path/movie.mkv"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !resp.Success {
		t.Error("success = false")
	}
	if resp.VideoInfo.Filename != "movie.mkv" {
		t.Errorf("filename = %q, want movie.mkv", resp.VideoInfo.Filename)
	}
	if resp.VideoInfo.Duration != "01:12:10" {
		t.Errorf("duration = %q, want 01:12:10", resp.VideoInfo.Duration)
	}
	if resp.VideoInfo.DurationSeconds != 4330.5 {
		t.Errorf("duration_seconds = %v", resp.VideoInfo.DurationSeconds)
	}
	if resp.VideoInfo.Size != "1.00 GB" {
		t.Errorf("size = %q, want 1.00 GB", resp.VideoInfo.Size)
	}
	if resp.VideoInfo.BitRate != "1.98 Mbps" {
		t.Errorf("bitrate = %q", resp.VideoInfo.BitRate)
	}

	if len(resp.VideoStreams) != 1 {
		t.Fatalf("video streams = %d, want 1", len(resp.VideoStreams))
	}
	vs := resp.VideoStreams[0]
	if vs.Resolution != "1920x1080" {
		t.Errorf("resolution = %q", vs.Resolution)
	}
	if vs.FPS != "29.97" {
		t.Errorf("fps = %q, want 29.97", vs.FPS)
	}
	if vs.Title != "Video Track 1" {
		t.Errorf("video title = %q", vs.Title)
	}

	if len(resp.AudioStreams) != 1 {
		t.Fatalf("audio streams = %d, want 1", len(resp.AudioStreams))
	}
	as := resp.AudioStreams[0]
	if as.Index != 1 {
		t.Errorf("audio index = %d, want container index 1", as.Index)
	}
	if as.Title != "Surround" || as.Language != "eng" || as.Channels != 6 {
		t.Errorf("audio stream = %+v", as)
	}
	if !as.Default {
		t.Error("audio default flag lost")
	}

	if len(resp.SubtitleStreams) != 1 {
		t.Fatalf("subtitle streams = %d, want 1", len(resp.SubtitleStreams))
	}
	ss := resp.SubtitleStreams[0]
	if ss.Index != 2 {
		t.Errorf("subtitle index = %d, want container index 2", ss.Index)
	}
	if ss.Title != "Subtitle 1" {
		t.Errorf("subtitle title = %q, want synthesized Subtitle 1", ss.Title)
	}
	if ss.Default || ss.Forced {
		t.Errorf("subtitle flags = %v/%v, want false/false", ss.Default, ss.Forced)
	}
}
