package middleware

import (
	"net/http"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	apiKeys map[string]struct{}
	enabled bool
}

// NewAuthConfig creates a new AuthConfig with the given API keys. Empty keys
// are dropped; with no usable keys, authentication is disabled.
func NewAuthConfig(apiKeys []string) AuthConfig {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return AuthConfig{enabled: false}
	}
	return AuthConfig{apiKeys: keys, enabled: true}
}

// Enabled returns true if authentication is enabled.
func (c AuthConfig) Enabled() bool { return c.enabled }

// WriteProtect returns a middleware requiring X-API-KEY header authentication
// for mutating methods (POST, PUT, PATCH, DELETE). Reads stay open. With no
// keys configured, all requests pass through.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.enabled || !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get("X-API-KEY")
			if apiKey == "" {
				writeUnauthorized(w, "X-API-KEY header is required")
				return
			}
			if _, ok := config.apiKeys[apiKey]; !ok {
				writeUnauthorized(w, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WriteProtectAuth is a convenience function that creates write-protection
// middleware from a slice of API keys.
func WriteProtectAuth(apiKeys []string) func(http.Handler) http.Handler {
	return WriteProtect(NewAuthConfig(apiKeys))
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"errors":[{"status":"401","title":"Unauthorized","detail":"` + detail + `"}]}`))
}
