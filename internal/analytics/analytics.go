// Package analytics defines the client for the external analytics service
// that supplies server-side recommendations.
package analytics

import (
	"context"
	"errors"

	"github.com/IT-FEST-2025/diagnify/internal/health"
)

// ErrNotConfigured is returned when no analytics endpoint is known.
var ErrNotConfigured = errors.New("analytics: no service configured")

// Request is the payload sent to the analytics service.
type Request struct {
	Owner      string                 `json:"owner"`
	Date       string                 `json:"date"`
	Response   health.Response        `json:"response"`
	Categories []health.CategoryScore `json:"categories"`
	Overall    int                    `json:"overall"`
}

// Client fetches recommendations for a scored submission.
type Client interface {
	Recommend(ctx context.Context, req Request) ([]health.Recommendation, error)
	Name() string
}
