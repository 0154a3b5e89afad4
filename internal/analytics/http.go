package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/redact"
)

const (
	recommendationsPath = "/recommendations"
	defaultTimeout      = 10 * time.Second
	maxResponseBytes    = 1 << 20
)

// HTTPClient implements Client against the analytics service's JSON API.
type HTTPClient struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTP creates a client for the service rooted at baseURL.
func NewHTTP(baseURL, token string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("analytics: invalid url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("analytics: invalid url %q: want http(s)://host", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		endpoint: strings.TrimSuffix(u.String(), "/") + recommendationsPath,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (h *HTTPClient) Name() string { return "http" }

func (h *HTTPClient) Recommend(ctx context.Context, r Request) ([]health.Recommendation, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("analytics: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("analytics: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("analytics: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics: service returned %d: %s", resp.StatusCode, redact.Redact(strings.TrimSpace(string(respBody))))
	}

	return decodeRecommendations(respBody)
}

type recommendationsResponse struct {
	Recommendations []health.Recommendation `json:"recommendations"`
}

// decodeRecommendations accepts {"recommendations": [...]} or a bare list.
func decodeRecommendations(data []byte) ([]health.Recommendation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []health.Recommendation
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("analytics: parse response: %w", err)
		}
		return list, nil
	}
	var result recommendationsResponse
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, fmt.Errorf("analytics: parse response: %w", err)
	}
	return result.Recommendations, nil
}
