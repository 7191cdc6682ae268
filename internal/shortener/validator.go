package shortener

import (
	"net"
	"net/url"
	"strings"
)

// Validate checks a raw locator against the acceptance rules, applied
// in order with the first failure winning:
//
//  1. non-empty after trimming
//  2. parseable with a scheme
//  3. https only
//  4. non-empty host
//  5. no loopback, private-range, or literal IPv4 host (SSRF guard)
func Validate(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrEmptyLocator
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" {
		return ErrMalformedLocator
	}

	if u.Scheme != "https" {
		return ErrProtocolNotAllowed
	}

	if u.Host == "" {
		return ErrMissingHost
	}

	if isPrivateOrLocalHost(u.Hostname()) {
		return ErrPrivateOrLocalHost
	}

	return nil
}

// isPrivateOrLocalHost reports whether the host points at loopback or
// private address space. Any literal IPv4 host is rejected, which also
// covers the ranges the prefix checks miss (169.254.x, 172.16/12).
func isPrivateOrLocalHost(host string) bool {
	if host == "localhost" {
		return true
	}

	if strings.HasPrefix(host, "127.") ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "192.168.") {
		return true
	}

	if ip := net.ParseIP(host); ip != nil && ip.To4() != nil {
		return true
	}

	return false
}

// Normalize canonicalizes a locator so logically-equal inputs compare
// equal: lowercased scheme and host, trailing slashes stripped from the
// path (the root path renders as empty), query and fragment preserved.
// Normalize is idempotent. Input that does not parse as an absolute URL
// is returned trimmed; Validate rejects it before it reaches storage.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return trimmed
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(u.Scheme))
	b.WriteString("://")
	b.WriteString(strings.ToLower(u.Host))
	b.WriteString(strings.TrimRight(u.EscapedPath(), "/"))

	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}

	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.EscapedFragment())
	}

	return b.String()
}
