// Package safeurl validates caller-supplied URLs before the gateway makes
// any outbound request with them. It enforces an http/https scheme and
// rejects anything that names or resolves to loopback, private, or
// link-local address space, so a caller cannot use the gateway to reach
// internal services (SSRF).
//
// The only way to obtain a ValidatedURL is through Validator.Validate;
// downstream packages accept ValidatedURL rather than strings so an
// unvalidated URL cannot cross the network boundary by accident.
//
// Hostnames are resolved once, at validation time. The result is not
// pinned for the request that follows, so a host whose records change
// between validation and use is not re-checked.
package safeurl
