package sectool

import (
	"context"
	"sync"
)

// mockAPIClient records calls and returns canned results.
type mockAPIClient struct {
	mu            sync.Mutex
	filingCalls   []FilingQuery
	fullTextCalls []FullTextQuery
	result        Result
	err           error
}

func (m *mockAPIClient) GetFilings(_ context.Context, q FilingQuery) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filingCalls = append(m.filingCalls, q)
	return m.result, m.err
}

func (m *mockAPIClient) FullTextSearch(_ context.Context, q FullTextQuery) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fullTextCalls = append(m.fullTextCalls, q)
	return m.result, m.err
}
