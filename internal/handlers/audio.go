package handlers

import (
	"net/http"
	"strconv"

	"media-gateway/internal/logging"
)

// StreamAudio extracts the selected audio track re-encoded as MP3.
func (h *Handlers) StreamAudio(w http.ResponseWriter, r *http.Request) {
	target, ok := h.validatedFromQuery(w, r)
	if !ok {
		return
	}

	indexParam := r.URL.Query().Get("index")
	if indexParam == "" {
		writeJSONError(w, "No audio track index provided", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(indexParam)
	if err != nil {
		writeJSONError(w, "Invalid audio track index", http.StatusBadRequest)
		return
	}

	if !h.pipeline.Available() {
		writeJSONError(w, "ffmpeg is not installed on the server", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache")

	if err := h.pipeline.StreamAudio(r.Context(), w, target, index); err != nil {
		logging.Warn("audio stream failed to start: %v", err)
		writeJSONError(w, "Failed to extract audio", http.StatusInternalServerError)
	}
}
