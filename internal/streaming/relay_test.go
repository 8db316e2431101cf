package streaming

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRelayCopiesAllBytes(t *testing.T) {
	w := httptest.NewRecorder()
	src := strings.NewReader("hello streaming world")

	n, err := Relay(context.Background(), w, src, 4)
	if err != nil {
		t.Fatalf("Relay returned error: %v", err)
	}
	if n != 21 {
		t.Errorf("Relay copied %d bytes, want 21", n)
	}
	if got := w.Body.String(); got != "hello streaming world" {
		t.Errorf("body = %q", got)
	}
	if !w.Flushed {
		t.Error("response was never flushed")
	}
}

func TestRelayEmptySource(t *testing.T) {
	w := httptest.NewRecorder()
	n, err := Relay(context.Background(), w, strings.NewReader(""), ProxyChunkSize)
	if err != nil {
		t.Fatalf("Relay returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("Relay copied %d bytes, want 0", n)
	}
}

func TestRelayPreservesByteOrder(t *testing.T) {
	data := make([]byte, 100*1024)
	for i := range data {
		data[i] = byte(i % 251)
	}

	w := httptest.NewRecorder()
	n, err := Relay(context.Background(), w, bytes.NewReader(data), MediaChunkSize)
	if err != nil {
		t.Fatalf("Relay returned error: %v", err)
	}
	if n != int64(len(data)) {
		t.Errorf("Relay copied %d bytes, want %d", n, len(data))
	}
	if !bytes.Equal(w.Body.Bytes(), data) {
		t.Error("relayed bytes differ from source")
	}
}

func TestRelayCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := httptest.NewRecorder()
	_, err := Relay(ctx, w, strings.NewReader("data"), ProxyChunkSize)
	if !errors.Is(err, ErrClientGone) {
		t.Errorf("Relay = %v, want ErrClientGone", err)
	}
}

// errReader fails after yielding its prefix.
type errReader struct {
	prefix io.Reader
	err    error
	done   bool
}

func (r *errReader) Read(p []byte) (int, error) {
	if !r.done {
		n, err := r.prefix.Read(p)
		if err == io.EOF {
			r.done = true
			return n, nil
		}
		return n, err
	}
	return 0, r.err
}

func TestRelaySourceFailureMidStream(t *testing.T) {
	src := &errReader{prefix: strings.NewReader("partial"), err: errors.New("pipe broke")}
	w := httptest.NewRecorder()

	n, err := Relay(context.Background(), w, src, ProxyChunkSize)
	if !errors.Is(err, ErrSourceFailed) {
		t.Errorf("Relay = %v, want ErrSourceFailed", err)
	}
	if n != 7 {
		t.Errorf("Relay copied %d bytes before failure, want 7", n)
	}
	if w.Body.String() != "partial" {
		t.Errorf("body = %q, want the bytes produced before the failure", w.Body.String())
	}
}

func TestRelayDefaultsChunkSize(t *testing.T) {
	w := httptest.NewRecorder()
	if _, err := Relay(context.Background(), w, strings.NewReader("x"), 0); err != nil {
		t.Fatalf("Relay with zero chunk size: %v", err)
	}
	if w.Body.String() != "x" {
		t.Errorf("body = %q", w.Body.String())
	}
}
