// Package handlers implements the HTTP API: health and version probes,
// media analysis, the range-preserving proxy, and the live transcode
// endpoints for video, subtitles, and audio.
//
// Every endpoint that touches a remote URL funnels it through the
// validator first; handlers never build upstream requests from raw query
// strings. Streaming endpoints write headers before the first relayed
// chunk, so failures past that point can only truncate the body.
package handlers
