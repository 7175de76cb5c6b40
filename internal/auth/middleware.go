package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

type Config struct {
	APIKey string
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// APIKeyMiddleware guards a handler behind a shared API key. An empty
// configured key disables the check so local development needs no setup.
// The key is accepted as either "Authorization: Bearer <key>" or
// "X-API-Key: <key>".
func APIKeyMiddleware(config *Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.APIKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
				if keysMatch(token, config.APIKey) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if keysMatch(r.Header.Get("X-API-Key"), config.APIKey) {
				next.ServeHTTP(w, r)
				return
			}

			writeUnauthorized(w)
		})
	}
}

func keysMatch(candidate, key string) bool {
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(key)) == 1
}

func writeUnauthorized(w http.ResponseWriter) {
	errorResp := ErrorResponse{
		Code:    "unauthorized",
		Message: "Invalid or missing API key",
		Hint:    "Provide API key via Authorization: Bearer <key> or X-API-Key: <key>",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(errorResp)
}
