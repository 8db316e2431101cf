package handlers

import (
	"net/http"
	"strconv"

	"media-gateway/internal/logging"
)

// StreamVideo serves the playback URL. With an audio query parameter it
// remuxes on the fly, copying video and re-encoding the selected audio
// track into a fragmented MP4; without one it degrades to the plain proxy
// so range requests keep working.
func (h *Handlers) StreamVideo(w http.ResponseWriter, r *http.Request) {
	target, ok := h.validatedFromQuery(w, r)
	if !ok {
		return
	}

	// Only a truly absent audio parameter degrades to the proxy; a present
	// but empty or garbled value is a caller error.
	query := r.URL.Query()
	if !query.Has("audio") {
		h.VideoProxy(w, r)
		return
	}

	audioIndex, err := strconv.Atoi(query.Get("audio"))
	if err != nil {
		writeJSONError(w, "Invalid audio track index", http.StatusBadRequest)
		return
	}

	if !h.pipeline.Available() {
		writeJSONError(w, "ffmpeg is not installed on the server", http.StatusInternalServerError)
		return
	}

	// Live remux output has no known length and must never be cached.
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache")

	if err := h.pipeline.StreamRemux(r.Context(), w, target, audioIndex); err != nil {
		logging.Warn("remux stream failed to start: %v", err)
		writeJSONError(w, "Failed to start video stream", http.StatusInternalServerError)
	}
}
