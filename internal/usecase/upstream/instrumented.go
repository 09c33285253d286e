package upstream

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
)

// Client is the SEC API contract being decorated.
type Client interface {
	GetFilings(ctx context.Context, p filing.Params) (domain.Result, error)
	FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error)
}

// InstrumentedClient wraps a Client with structured logging.
// Transport metrics are recorded in transport/secapi; this layer owns the
// call-level view that also covers cache hits.
type InstrumentedClient struct {
	inner  Client
	logger *zap.Logger
}

// NewInstrumentedClient wraps inner.
func NewInstrumentedClient(inner Client, logger *zap.Logger) *InstrumentedClient {
	return &InstrumentedClient{inner: inner, logger: logger}
}

// GetFilings delegates to the inner client and logs the outcome.
func (c *InstrumentedClient) GetFilings(ctx context.Context, p filing.Params) (domain.Result, error) {
	start := time.Now()
	res, err := c.inner.GetFilings(ctx, p)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Filing lookup failed",
			zap.String("ticker", p.Ticker()),
			zap.String("form_type", p.FormType()),
			zap.Int("limit", p.Limit()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get filings: %w", err)
	}

	c.logger.Debug("Filing lookup completed",
		zap.String("ticker", p.Ticker()),
		zap.String("form_type", p.FormType()),
		zap.Int("limit", p.Limit()),
		zap.Duration("duration", duration),
	)
	return res, nil
}

// FullTextSearch delegates to the inner client and logs the outcome.
func (c *InstrumentedClient) FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error) {
	start := time.Now()
	res, err := c.inner.FullTextSearch(ctx, p)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Full-text search failed",
			zap.Int("query_len", len(p.Query())),
			zap.Strings("form_types", p.FormTypes()),
			zap.Int("limit", p.Limit()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("full text search: %w", err)
	}

	c.logger.Debug("Full-text search completed",
		zap.Int("query_len", len(p.Query())),
		zap.Strings("form_types", p.FormTypes()),
		zap.Int("limit", p.Limit()),
		zap.Duration("duration", duration),
	)
	return res, nil
}
