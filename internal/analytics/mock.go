package analytics

import (
	"context"
	"sync"

	"github.com/IT-FEST-2025/diagnify/internal/health"
)

// MockClient is a test double that returns canned recommendations.
type MockClient struct {
	Recommendations []health.Recommendation
	Err             error

	mu       sync.Mutex
	requests []Request
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) Recommend(_ context.Context, r Request) ([]health.Recommendation, error) {
	m.mu.Lock()
	m.requests = append(m.requests, r)
	m.mu.Unlock()
	return m.Recommendations, m.Err
}

// Requests returns the requests received so far.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
