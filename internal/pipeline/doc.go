/*
Package pipeline drives the external transcoding tool as a per-request
child process and relays its standard output to the HTTP caller live.

Three operations share one lifecycle: video remux with a selected audio
track (fragmented MP4), subtitle extraction (WebVTT or SRT), and audio
extraction (MP3). In every case the child's stdout is read in fixed-size
chunks and forwarded as produced, with no full-output buffering.

The lifecycle guarantee is that a child process never outlives its
request: when the client disconnects the context cancellation signals the
child with SIGTERM, escalating to SIGKILL after a bounded grace period,
and the process is always waited on before the handler returns.
*/
package pipeline
