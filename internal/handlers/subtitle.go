package handlers

import (
	"net/http"
	"strconv"

	"media-gateway/internal/logging"
	"media-gateway/internal/pipeline"
	"media-gateway/internal/safeurl"
)

// SubtitleVTT extracts the selected subtitle stream converted to WebVTT,
// the only subtitle format browsers play natively.
func (h *Handlers) SubtitleVTT(w http.ResponseWriter, r *http.Request) {
	target, index, ok := h.subtitleParams(w, r)
	if !ok {
		return
	}

	if !h.pipeline.Available() {
		writeJSONError(w, "ffmpeg is not installed on the server", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if err := h.pipeline.StreamSubtitle(r.Context(), w, target, index, pipeline.SubtitleWebVTT); err != nil {
		logging.Warn("subtitle stream failed to start: %v", err)
		writeJSONError(w, "Failed to extract subtitle", http.StatusInternalServerError)
	}
}

// SubtitleSRT extracts the selected subtitle stream as SRT text, served as
// a download for external players.
func (h *Handlers) SubtitleSRT(w http.ResponseWriter, r *http.Request) {
	target, index, ok := h.subtitleParams(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if err := h.pipeline.StreamSubtitle(r.Context(), w, target, index, pipeline.SubtitleSRT); err != nil {
		logging.Warn("srt stream failed to start: %v", err)
		writeJSONError(w, "Failed to extract subtitle", http.StatusInternalServerError)
	}
}

// subtitleParams validates the url and index query parameters shared by
// both subtitle endpoints, writing the 400 itself on failure.
func (h *Handlers) subtitleParams(w http.ResponseWriter, r *http.Request) (safeurl.ValidatedURL, int, bool) {
	target, valid := h.validatedFromQuery(w, r)
	if !valid {
		return target, 0, false
	}

	indexParam := r.URL.Query().Get("index")
	if indexParam == "" {
		writeJSONError(w, "No subtitle index provided", http.StatusBadRequest)
		return target, 0, false
	}

	index, err := strconv.Atoi(indexParam)
	if err != nil {
		writeJSONError(w, "Invalid subtitle index", http.StatusBadRequest)
		return target, 0, false
	}

	return target, index, true
}
