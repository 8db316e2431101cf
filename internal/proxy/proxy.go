package proxy

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"media-gateway/internal/logging"
	"media-gateway/internal/metrics"
	"media-gateway/internal/safeurl"
	"media-gateway/internal/streaming"
)

// ErrUpstreamTimeout means the origin did not connect or answer headers
// within the configured window. Handlers map it to 504.
var ErrUpstreamTimeout = errors.New("request timed out")

// UpstreamError reports a non-success status from the origin. Handlers map
// it to 500.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// DefaultTimeout bounds the connect/first-byte phase of an upstream
// request. It does not bound the transfer itself; a two-hour movie may
// legitimately stream for two hours.
const DefaultTimeout = 30 * time.Second

// Browser-like request headers. Some origins refuse obvious bot agents.
const upstreamUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Proxy forwards validated URLs' byte content to callers, preserving
// partial-content semantics.
type Proxy struct {
	client *http.Client
}

// New returns a Proxy whose upstream requests connect and receive response
// headers within timeout. Compression is disabled so byte offsets in range
// responses stay meaningful, and redirects are followed.
func New(timeout time.Duration) *Proxy {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Proxy{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: timeout,
				DisableCompression:    true,
			},
		},
	}
}

// Stream issues a GET for target and relays the body to w in 8 KiB chunks.
// The inbound Range header, if any, is forwarded verbatim; a 206 from the
// origin is mirrored along with its Content-Range.
//
// An error return means nothing has been written yet and the caller may
// still send an error response. Once headers go out, failures are logged
// and the stream is truncated silently (nil return).
func (p *Proxy) Stream(w http.ResponseWriter, r *http.Request, target safeurl.ValidatedURL) error {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build upstream request: %w", err)
	}

	req.Header.Set("User-Agent", upstreamUserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "identity")
	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			metrics.ProxyUpstreamErrors.WithLabelValues("timeout").Inc()
			return ErrUpstreamTimeout
		}
		metrics.ProxyUpstreamErrors.WithLabelValues("connect").Inc()
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		metrics.ProxyUpstreamErrors.WithLabelValues("status").Inc()
		return &UpstreamError{StatusCode: resp.StatusCode}
	}

	writeResponseHeaders(w, resp)

	status := http.StatusOK
	if resp.StatusCode == http.StatusPartialContent {
		status = http.StatusPartialContent
	}
	w.WriteHeader(status)

	n, relayErr := streaming.Relay(r.Context(), w, resp.Body, streaming.ProxyChunkSize)
	metrics.ProxyBytesTotal.Add(float64(n))

	if relayErr != nil {
		// Headers are out; nothing can be reported to the client.
		if errors.Is(relayErr, streaming.ErrClientGone) {
			logging.Debug("proxy client disconnected after %d bytes", n)
		} else {
			logging.Warn("proxy stream failed after %d bytes: %v", n, relayErr)
		}
	}
	return nil
}

func writeResponseHeaders(w http.ResponseWriter, resp *http.Response) {
	h := w.Header()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	h.Set("Content-Type", contentType)
	h.Set("Accept-Ranges", "bytes")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Range, Content-Type")
	h.Set("Access-Control-Expose-Headers", "Content-Range, Content-Length, Accept-Ranges")
	h.Set("Cache-Control", "public, max-age=3600")

	if resp.StatusCode == http.StatusPartialContent {
		if contentRange := resp.Header.Get("Content-Range"); contentRange != "" {
			h.Set("Content-Range", contentRange)
		}
	}
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		h.Set("Content-Length", contentLength)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
