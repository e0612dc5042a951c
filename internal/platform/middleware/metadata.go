package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"vitaran/pkg/requestcontext"
)

// Channel classifications derived from the User-Agent header. Disbursement
// audits track which access channel a request arrived through.
const (
	ChannelMobile  = "mobile"
	ChannelDesktop = "desktop"
	ChannelBot     = "bot"
	ChannelAPI     = "api"
)

// ClientMetadata extracts the client IP, User-Agent, and derived access
// channel into the request context for downstream audit enrichment.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := getClientIP(r)
		ua := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ip, ua, classifyChannel(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientIP retrieves the client IP from the context.
func GetClientIP(ctx context.Context) string {
	return requestcontext.ClientIP(ctx)
}

// GetUserAgent retrieves the raw User-Agent from the context.
func GetUserAgent(ctx context.Context) string {
	return requestcontext.UserAgent(ctx)
}

// getClientIP resolves the originating client address, preferring proxy
// headers over the raw socket address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First entry is the originating client
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	// Strip the port from RemoteAddr
	addr := r.RemoteAddr
	if idx := strings.LastIndexByte(addr, ':'); idx >= 0 {
		return addr[:idx]
	}
	return addr
}

// classifyChannel buckets a User-Agent into an access channel. Programmatic
// clients (curl, SDKs, empty UA) count as "api".
func classifyChannel(ua string) string {
	if ua == "" {
		return ChannelAPI
	}

	parsed := useragent.New(ua)
	switch {
	case parsed.Bot():
		return ChannelBot
	case parsed.Mobile():
		return ChannelMobile
	default:
		name, _ := parsed.Browser()
		if name == "" {
			return ChannelAPI
		}
		return ChannelDesktop
	}
}
