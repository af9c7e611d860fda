package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TrustedProxies sets e.IPExtractor so c.RealIP() honours X-Real-IP and
// X-Forwarded-For, but only when the peer address lies in one of
// trustedCIDRs. Any other peer is taken at face value, so a client cannot
// spoof its way into a fresh rate-limit bucket. Unparseable CIDRs are logged
// and skipped.
func TrustedProxies(e *echo.Echo, trustedCIDRs []string) {
	e.IPExtractor = buildIPExtractor(trustedCIDRs)
}

func buildIPExtractor(trustedCIDRs []string) echo.IPExtractor {
	trusted := make([]*net.IPNet, 0, len(trustedCIDRs))
	for _, cidr := range trustedCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			slog.Warn("ignoring invalid trusted proxy CIDR", slog.String("cidr", cidr))
			continue
		}
		trusted = append(trusted, network)
	}

	return func(req *http.Request) string {
		peer := extractDirectIP(req.RemoteAddr)
		if !isTrusted(peer, trusted) {
			return peer
		}
		if realIP := strings.TrimSpace(req.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
		// X-Forwarded-For lists the client first, then each hop.
		if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
			client, _, _ := strings.Cut(xff, ",")
			if client = strings.TrimSpace(client); client != "" {
				return client
			}
		}
		return peer
	}
}

// extractDirectIP strips the port from RemoteAddr.
func extractDirectIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func isTrusted(ipStr string, trusted []*net.IPNet) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, network := range trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
