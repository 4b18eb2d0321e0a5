package mw

import (
	"net"
	"net/http"
	"strings"
)

// hostOnly strips the port from strings like "ip:port", "[v6]:port", or
// returns the input unchanged when no port is present.
func hostOnly(s string) string {
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// firstForwarded returns the left-most entry of an X-Forwarded-For
// header value, trimmed.
func firstForwarded(xff string) string {
	xff = strings.TrimSpace(xff)
	if xff == "" {
		return ""
	}
	if i := strings.IndexByte(xff, ','); i >= 0 {
		xff = xff[:i]
	}
	return strings.TrimSpace(xff)
}

// ClientIP resolves the real client IP. When trustProxy is true it
// prefers X-Forwarded-For (first entry), then X-Real-IP; otherwise only
// RemoteAddr is believed.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if v := firstForwarded(r.Header.Get("X-Forwarded-For")); v != "" {
			if ip := hostOnly(v); ip != "" {
				return ip
			}
		}
		if v := strings.TrimSpace(r.Header.Get("X-Real-IP")); v != "" {
			if ip := hostOnly(v); ip != "" {
				return ip
			}
		}
	}
	return hostOnly(r.RemoteAddr)
}

// ipMatcher matches exact IPs and CIDR ranges.
type ipMatcher struct {
	ips  []net.IP
	nets []*net.IPNet
}

func newIPMatcher(list []string) *ipMatcher {
	m := &ipMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if _, ipnet, err := net.ParseCIDR(s); err == nil {
			m.nets = append(m.nets, ipnet)
			continue
		}
		if ip := net.ParseIP(s); ip != nil {
			m.ips = append(m.ips, ip)
		}
	}
	return m
}

func (m *ipMatcher) empty() bool {
	return len(m.ips) == 0 && len(m.nets) == 0
}

func (m *ipMatcher) allow(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, v := range m.ips {
		if v.Equal(ip) {
			return true
		}
	}
	for _, n := range m.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
