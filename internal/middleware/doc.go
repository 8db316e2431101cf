// Package middleware holds the HTTP middleware chain: W3C-style access
// logging with log-injection sanitization, Prometheus request metrics,
// per-client rate limiting, and CORS preflight handling.
package middleware
