// Package probe inspects remote media containers by running ffprobe as a
// subprocess and normalizing its JSON output into a stream inventory.
//
// The inspector only ever receives a safeurl.ValidatedURL, deliberately
// cannot be handed a raw string, and reports every failure mode (non-zero
// exit, timeout, malformed output) uniformly as ErrUnavailable.
package probe
