package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP picks the originating address, preferring proxy headers over the
// socket peer.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return normalizeIP(ip)
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return normalizeIP(strings.TrimSpace(first))
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalizeIP(r.RemoteAddr)
	}
	return normalizeIP(host)
}

// normalizeIP strips the IPv6-mapped IPv4 prefix.
func normalizeIP(ip string) string {
	return strings.TrimPrefix(ip, "::ffff:")
}
