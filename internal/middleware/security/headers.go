// Package security applies standard security headers to API responses.
package security

import "net/http"

// HeadersConfig holds the header values the middleware sets.
type HeadersConfig struct {
	CSP                 string
	XFrameOptions       string
	XContentTypeOptions string
	ReferrerPolicy      string
	CacheControl        string
}

// DefaultHeadersConfig returns defaults suitable for a JSON API that
// serves no markup and must never be framed or cached by proxies.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		CSP:                 "default-src 'none'; frame-ancestors 'none'",
		XFrameOptions:       "DENY",
		XContentTypeOptions: "nosniff",
		ReferrerPolicy:      "no-referrer",
		CacheControl:        "no-store",
	}
}

// HeadersMiddleware applies the configured headers to every response.
type HeadersMiddleware struct {
	config HeadersConfig
}

func NewHeadersMiddleware(config HeadersConfig) *HeadersMiddleware {
	return &HeadersMiddleware{config: config}
}

func (m *HeadersMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if m.config.CSP != "" {
			h.Set("Content-Security-Policy", m.config.CSP)
		}
		if m.config.XFrameOptions != "" {
			h.Set("X-Frame-Options", m.config.XFrameOptions)
		}
		if m.config.XContentTypeOptions != "" {
			h.Set("X-Content-Type-Options", m.config.XContentTypeOptions)
		}
		if m.config.ReferrerPolicy != "" {
			h.Set("Referrer-Policy", m.config.ReferrerPolicy)
		}
		if m.config.CacheControl != "" {
			h.Set("Cache-Control", m.config.CacheControl)
		}
		next.ServeHTTP(w, r)
	})
}
