package handlers

import (
	"net/http"

	"media-gateway/internal/pipeline"
	"media-gateway/internal/probe"
	"media-gateway/internal/proxy"
	"media-gateway/internal/safeurl"
)

type Handlers struct {
	validator *safeurl.Validator
	inspector *probe.Inspector
	proxy     *proxy.Proxy
	pipeline  *pipeline.Manager
}

func New(validator *safeurl.Validator, inspector *probe.Inspector, p *proxy.Proxy, m *pipeline.Manager) *Handlers {
	return &Handlers{
		validator: validator,
		inspector: inspector,
		proxy:     p,
		pipeline:  m,
	}
}

// validatedFromQuery reads the url query parameter and runs it through the
// validator. On failure it writes the 400 response itself and returns
// ok=false; callers just return.
func (h *Handlers) validatedFromQuery(w http.ResponseWriter, r *http.Request) (safeurl.ValidatedURL, bool) {
	target, err := h.validator.Validate(r.URL.Query().Get("url"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return safeurl.ValidatedURL{}, false
	}
	return target, true
}
