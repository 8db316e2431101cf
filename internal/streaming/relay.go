package streaming

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// Sentinel errors for relay operations.
var (
	// ErrClientGone indicates the client disconnected before the stream
	// completed. Detected via the request context or a failed write.
	ErrClientGone = errors.New("client disconnected")

	// ErrSourceFailed indicates the upstream source (remote origin or
	// child process pipe) failed mid-stream.
	ErrSourceFailed = errors.New("stream source failed")
)

// Chunk sizes used by the gateway's streaming paths.
const (
	// ProxyChunkSize is used when relaying remote HTTP bodies.
	ProxyChunkSize = 8 * 1024

	// MediaChunkSize is used for transcoded audio/video payloads.
	MediaChunkSize = 32 * 1024

	// TextChunkSize is used for subtitle text output.
	TextChunkSize = 8 * 1024
)

// Relay copies src to w in chunks of at most chunkSize bytes, flushing after
// each chunk so bytes reach the client as they are produced. Nothing is
// buffered beyond one chunk. The copy stops when src is exhausted, when ctx
// is canceled, or when a write to the client fails; the two client-side
// conditions are reported as ErrClientGone, a read failure as ErrSourceFailed.
//
// Relay never writes headers; callers must set status and headers first.
// Returns the number of bytes delivered to w.
func Relay(ctx context.Context, w http.ResponseWriter, src io.Reader, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = ProxyChunkSize
	}

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, chunkSize)
	var written int64

	for {
		select {
		case <-ctx.Done():
			return written, ErrClientGone
		default:
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			wn, writeErr := w.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, errors.Join(ErrClientGone, writeErr)
			}
			if flusher != nil {
				flusher.Flush()
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, errors.Join(ErrSourceFailed, readErr)
		}
	}
}
