// Package proxy relays remote media bytes to clients while preserving
// HTTP range semantics: the inbound Range header is forwarded verbatim,
// 206 responses are mirrored with their Content-Range, and upstream
// compression is disabled so byte offsets stay exact. Bodies stream
// through in fixed-size chunks; nothing is buffered whole.
package proxy
