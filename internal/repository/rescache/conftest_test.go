package rescache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/db"
	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
)

type mockClient struct {
	result        domain.Result
	err           error
	filingCalls   int
	fullTextCalls int
}

func (m *mockClient) GetFilings(_ context.Context, _ filing.Params) (domain.Result, error) {
	m.filingCalls++
	return m.result, m.err
}

func (m *mockClient) FullTextSearch(_ context.Context, _ fulltext.Params) (domain.Result, error) {
	m.fullTextCalls++
	return m.result, m.err
}

// mockKVStore is an in-memory store with optional overrides.
type mockKVStore struct {
	data  map[string][]byte
	ttls  map[string]time.Duration
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCachedClient(t *testing.T, inner *mockClient) (*CachedClient, *mockKVStore) {
	t.Helper()
	ms := newMockKVStore()
	cc := New(inner, ms, time.Hour, nil, zap.NewNop())
	return cc, ms
}
