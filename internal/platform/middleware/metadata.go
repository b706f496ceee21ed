package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"

	"aquads/pkg/requestcontext"
)

// ClientMetadata extracts client IP address and a parsed User-Agent from the
// request and adds them to the context. Apply early in the chain.
// Forwarding headers are only read when the peer is one of trusted.
func ClientMetadata(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithClient(r.Context(), ClientInfoFromRequest(r, trusted))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientInfoFromRequest builds the caller description for r.
func ClientInfoFromRequest(r *http.Request, trusted []netip.Prefix) requestcontext.ClientInfo {
	info := requestcontext.ClientInfo{
		IP:        ClientIPFromRequest(r, trusted),
		UserAgent: r.Header.Get("User-Agent"),
	}
	if info.UserAgent == "" {
		return info
	}
	ua := useragent.New(info.UserAgent)
	name, version := ua.Browser()
	info.Browser = strings.TrimSpace(name + " " + version)
	info.OS = ua.OS()
	info.Bot = ua.Bot()
	return info
}

// ClientIPFromRequest returns the address of the caller. Without a trusted
// peer it is the connection's remote address. Behind trusted proxies,
// X-Forwarded-For is walked from the right and the first untrusted hop wins;
// entries left of it are client-supplied and ignored.
func ClientIPFromRequest(r *http.Request, trusted []netip.Prefix) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !isTrusted(peer, trusted) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !isTrusted(hop, trusted) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
