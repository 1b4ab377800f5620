// Package middleware provides HTTP middleware shared by the API endpoints.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"doc-digest/pkg/config"
)

// CORSConfig controls cross-origin access to the API.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API. The single
	// entry "*" allows any origin.
	AllowedOrigins []string

	// AllowedMethods lists permitted HTTP methods.
	AllowedMethods []string

	// AllowedHeaders lists permitted request headers.
	AllowedHeaders []string

	// MaxAgeSeconds is how long browsers may cache the preflight response.
	MaxAgeSeconds int
}

// LoadCORSConfig loads CORS settings from environment variables.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origin list (default: "*")
//   - CORS_MAX_AGE_SECONDS: preflight cache lifetime (default: 600)
func LoadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: config.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAgeSeconds:  config.GetEnvInt("CORS_MAX_AGE_SECONDS", 600),
	}
}

// allowsOrigin reports whether the origin may access the API.
func (c CORSConfig) allowsOrigin(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// CORS returns middleware that applies the configured cross-origin policy.
// Preflight OPTIONS requests are answered directly; disallowed origins get no
// CORS headers, which makes the browser reject the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && cfg.allowsOrigin(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", methods)
					w.Header().Set("Access-Control-Allow-Headers", headers)
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAgeSeconds))
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
