package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"media-gateway/internal/logging"
	"media-gateway/internal/proxy"
)

// VideoProxy relays the remote file byte for byte, preserving range
// semantics so the player can seek. Errors can only be reported as JSON
// while nothing has been written; after the first relayed chunk the
// response is committed.
func (h *Handlers) VideoProxy(w http.ResponseWriter, r *http.Request) {
	target, ok := h.validatedFromQuery(w, r)
	if !ok {
		return
	}

	err := h.proxy.Stream(w, r, target)
	if err == nil {
		return
	}

	var upstreamErr *proxy.UpstreamError
	switch {
	case errors.Is(err, proxy.ErrUpstreamTimeout):
		writeJSONError(w, "Request timed out", http.StatusGatewayTimeout)
	case errors.As(err, &upstreamErr):
		writeJSONError(w, fmt.Sprintf("Failed to fetch video: upstream returned %d", upstreamErr.StatusCode), http.StatusInternalServerError)
	default:
		logging.Warn("video proxy error: %v", err)
		writeJSONError(w, fmt.Sprintf("Failed to fetch video: %v", err), http.StatusInternalServerError)
	}
}
