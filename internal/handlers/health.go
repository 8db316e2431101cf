package handlers

import (
	"net/http"

	"media-gateway/internal/startup"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	FFmpeg  bool   `json:"ffmpeg"`
	FFprobe bool   `json:"ffprobe"`
	Version string `json:"version"`
}

// HealthCheck reports liveness plus whether the external media tools were
// found. Tool absence does not fail the check; the service can still proxy.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		FFmpeg:  h.pipeline.Available(),
		FFprobe: h.inspector.Available(),
		Version: startup.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// Version returns build information
func (h *Handlers) Version(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, startup.GetBuildInfo())
}
