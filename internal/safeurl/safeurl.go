package safeurl

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
)

// Rejection reasons. Handlers map all of these to 400 responses.
var (
	ErrEmptyURL       = errors.New("no URL provided")
	ErrInvalidURL     = errors.New("invalid URL format")
	ErrScheme         = errors.New("only HTTP/HTTPS allowed")
	ErrNoHostname     = errors.New("invalid hostname")
	ErrBlockedNetwork = errors.New("access to internal networks not allowed")
	ErrBlockedHost    = errors.New("access to localhost not allowed")
)

// blockedHostnames are rejected by name, independent of what DNS says.
// A resolver that answers something unexpected for these must not be
// able to get a request through.
var blockedHostnames = map[string]bool{
	"localhost":             true,
	"localhost.localdomain": true,
	"0.0.0.0":               true,
}

// BlockedNetworkSet is an immutable set of network ranges that the gateway
// refuses to contact. It is built once at process start and is safe for
// unsynchronized concurrent reads.
type BlockedNetworkSet struct {
	prefixes []netip.Prefix
}

// DefaultBlockedNetworks returns the loopback, private, link-local and
// IPv6 unique-local ranges that an internet-facing proxy must never reach.
func DefaultBlockedNetworks() *BlockedNetworkSet {
	cidrs := []string{
		"127.0.0.0/8",
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"169.254.0.0/16",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}

	set := &BlockedNetworkSet{prefixes: make([]netip.Prefix, 0, len(cidrs))}
	for _, c := range cidrs {
		set.prefixes = append(set.prefixes, netip.MustParsePrefix(c))
	}
	return set
}

// Contains reports whether addr falls inside any blocked range.
// IPv4-mapped IPv6 addresses are unmapped first so ::ffff:127.0.0.1
// is caught by the IPv4 loopback range.
func (s *BlockedNetworkSet) Contains(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range s.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ValidatedURL is a URL that has passed validation. It can only be obtained
// from Validator.Validate; everything that makes a network or subprocess
// call on behalf of a caller takes one of these instead of a raw string.
type ValidatedURL struct {
	raw string
}

// String returns the decoded, re-serialized form of the URL.
func (u ValidatedURL) String() string {
	return u.raw
}

// Validator classifies caller-supplied URLs as admissible or rejected
// before any network call is made with them.
type Validator struct {
	blocked *BlockedNetworkSet

	// lookup resolves a hostname to addresses. Overridable in tests.
	lookup func(host string) ([]netip.Addr, error)
}

// NewValidator returns a Validator backed by the given blocked network set
// and the default system resolver.
func NewValidator(blocked *BlockedNetworkSet) *Validator {
	return &Validator{
		blocked: blocked,
		lookup:  systemLookup,
	}
}

func systemLookup(host string) ([]netip.Addr, error) {
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, err
	}
	addrs := make([]netip.Addr, 0, len(ips))
	for _, ip := range ips {
		if a, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, a)
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no usable addresses for %q", host)
	}
	return addrs, nil
}

// Validate checks rawURL and returns it wrapped as a ValidatedURL, or a
// rejection error. The input is percent-decoded exactly once before parsing.
// DNS failures reject rather than propagate: an unresolvable name is
// treated the same as a blocked one.
func (v *Validator) Validate(rawURL string) (ValidatedURL, error) {
	if rawURL == "" {
		return ValidatedURL{}, ErrEmptyURL
	}

	decoded, err := url.PathUnescape(rawURL)
	if err != nil {
		// Malformed escapes are passed through undecoded, matching
		// lenient percent-decoding. The URL parser gets the final say.
		decoded = rawURL
	}

	parsed, err := url.Parse(decoded)
	if err != nil {
		return ValidatedURL{}, ErrInvalidURL
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ValidatedURL{}, ErrScheme
	}

	host := parsed.Hostname()
	if host == "" {
		return ValidatedURL{}, ErrNoHostname
	}

	if v.resolvesToBlocked(host) {
		return ValidatedURL{}, ErrBlockedNetwork
	}

	if blockedHostnames[strings.ToLower(host)] {
		return ValidatedURL{}, ErrBlockedHost
	}

	return ValidatedURL{raw: parsed.String()}, nil
}

// resolvesToBlocked reports whether host is, or resolves to, an address in
// the blocked set. Resolution failures count as blocked (fail closed).
func (v *Validator) resolvesToBlocked(host string) bool {
	if addr, err := netip.ParseAddr(strings.Trim(host, "[]")); err == nil {
		return v.blocked.Contains(addr)
	}

	addrs, err := v.lookup(host)
	if err != nil {
		return true
	}

	for _, addr := range addrs {
		if v.blocked.Contains(addr) {
			return true
		}
	}
	return false
}
