package rescache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/db"
	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
)

var cacheKeyPrefix = domain.KeyPrefix + "result:"

const (
	opFilings  = "filings"
	opFullText = "full_text"
)

// client is the wrapped SEC API client.
type client interface {
	GetFilings(ctx context.Context, p filing.Params) (domain.Result, error)
	FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error)
}

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedClient caches SEC API results in a key-value store.
// Failed calls are never cached.
type CachedClient struct {
	inner      client
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(
	inner client,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedClient {
	return &CachedClient{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

type filingKey struct {
	Ticker   string `json:"ticker"`
	FormType string `json:"form_type"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Limit    int    `json:"limit"`
}

type fullTextKey struct {
	Query     string   `json:"query"`
	FormTypes []string `json:"form_types"`
	DateFrom  string   `json:"date_from"`
	DateTo    string   `json:"date_to"`
	Limit     int      `json:"limit"`
}

// GetFilings returns a cached result or calls the inner client.
func (c *CachedClient) GetFilings(ctx context.Context, p filing.Params) (domain.Result, error) {
	key := c.cacheKey(opFilings, filingKey{
		Ticker:   p.Ticker(),
		FormType: p.FormType(),
		DateFrom: p.DateFrom(),
		DateTo:   p.DateTo(),
		Limit:    p.Limit(),
	})
	return c.cached(ctx, key, func() (domain.Result, error) {
		return c.inner.GetFilings(ctx, p)
	})
}

// FullTextSearch returns a cached result or calls the inner client.
func (c *CachedClient) FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error) {
	key := c.cacheKey(opFullText, fullTextKey{
		Query:     p.Query(),
		FormTypes: p.FormTypes(),
		DateFrom:  p.DateFrom(),
		DateTo:    p.DateTo(),
		Limit:     p.Limit(),
	})
	return c.cached(ctx, key, func() (domain.Result, error) {
		return c.inner.FullTextSearch(ctx, p)
	})
}

func (c *CachedClient) cached(
	ctx context.Context,
	key string,
	fetch func() (domain.Result, error),
) (domain.Result, error) {
	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	res, err := fetch()
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, res)
	return res, nil
}

func (c *CachedClient) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedClient) cacheKey(op string, params any) string {
	// Struct field order makes the encoding deterministic.
	data, _ := json.Marshal(params)
	h := sha256.New()
	h.Write([]byte(op))
	h.Write([]byte{0})
	h.Write(data)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedClient) getFromCache(ctx context.Context, key string) (domain.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached result", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var res domain.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("Failed to parse cached result", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return res, true
}

func (c *CachedClient) putToCache(ctx context.Context, key string, res domain.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("Failed to encode result for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache result", zap.String("key", key), zap.Error(err))
	}
}
