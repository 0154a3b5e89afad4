package analytics

import (
	"os"
	"time"
)

const (
	EnvURL   = "DIAGNIFY_ANALYTICS_URL"
	EnvToken = "DIAGNIFY_ANALYTICS_TOKEN"
)

// Resolve builds a client from the explicit URL, falling back to the
// environment. Token comes from the environment when not given.
func Resolve(baseURL, token string, timeout time.Duration) (Client, error) {
	if baseURL == "" {
		baseURL = os.Getenv(EnvURL)
	}
	if baseURL == "" {
		return nil, ErrNotConfigured
	}
	if token == "" {
		token = os.Getenv(EnvToken)
	}
	return NewHTTP(baseURL, token, timeout)
}
