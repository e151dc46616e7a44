package auth

import "strings"

// NormalizeIP canonicalizes an address for allowlist comparison.
// IPv6-mapped IPv4 addresses lose their ::ffff: prefix and all loopback
// spellings collapse to 127.0.0.1, so an agent pinned to 203.0.113.5
// can log in from a socket reporting ::ffff:203.0.113.5.
func NormalizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if strings.HasPrefix(ip, "::ffff:") {
		ip = strings.TrimPrefix(ip, "::ffff:")
	}
	switch ip {
	case "::1", "localhost", "127.0.0.1":
		return "127.0.0.1"
	}
	return ip
}

// IPMatch reports whether a client address satisfies the assigned one
// after normalization.
func IPMatch(clientIP, assignedIP string) bool {
	return NormalizeIP(clientIP) == NormalizeIP(assignedIP)
}
