// Package secapi is a pass-through HTTP binding to the SEC API.
// Parameters go out as given and the decoded JSON object comes back as is;
// pagination, retries and rate limiting are left to the service.
package secapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
	"github.com/kailas-cloud/sectool/internal/metrics"
)

// Operation labels used in metrics and logs.
const (
	OpGetFilings     = "get_filings"
	OpFullTextSearch = "full_text_search"
)

const maxErrorBody = 4 << 10

// Client calls the SEC API over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	cred       domain.Credential
	logger     *zap.Logger
}

// Config holds the SEC API connection settings.
type Config struct {
	Credential domain.Credential
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, Timeout is ignored when set
	Logger     *zap.Logger
}

// NewClient creates an SEC API client bound to cfg.Credential.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.Credential.Empty() {
		return nil, fmt.Errorf("sec api key is required: %w", domain.ErrConfiguration)
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid sec api base url %q: %w", cfg.BaseURL, domain.ErrConfiguration)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: hc,
		baseURL:    u,
		cred:       cfg.Credential,
		logger:     logger,
	}, nil
}

// filingsQuery is the query string for GET /filings.
func filingsQuery(p filing.Params) url.Values {
	v := url.Values{}
	v.Set("ticker", p.Ticker())
	if p.FormType() != "" {
		v.Set("form_type", p.FormType())
	}
	if p.DateFrom() != "" {
		v.Set("date_from", p.DateFrom())
	}
	if p.DateTo() != "" {
		v.Set("date_to", p.DateTo())
	}
	v.Set("limit", strconv.Itoa(p.Limit()))
	return v
}

// fullTextRequest is the body of POST /full-text-search.
type fullTextRequest struct {
	Query     string   `json:"query"`
	FormTypes []string `json:"formTypes,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Limit     int      `json:"limit"`
}

// GetFilings implements router.Client.
func (c *Client) GetFilings(ctx context.Context, p filing.Params) (domain.Result, error) {
	u := c.endpoint("filings")
	u.RawQuery = filingsQuery(p).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build filings request: %w", err)
	}
	return c.do(req, OpGetFilings)
}

// FullTextSearch implements router.Client.
func (c *Client) FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error) {
	body, err := json.Marshal(fullTextRequest{
		Query:     p.Query(),
		FormTypes: p.FormTypes(),
		StartDate: p.DateFrom(),
		EndDate:   p.DateTo(),
		Limit:     p.Limit(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode full-text request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("full-text-search").String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build full-text request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, OpFullTextSearch)
}

// HealthCheck verifies the SEC API host answers at all.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sec api unreachable: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("sec api health: status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	return nil
}

func (c *Client) endpoint(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + path
	return &u
}

func (c *Client) do(req *http.Request, op string) (domain.Result, error) {
	req.Header.Set("Authorization", c.cred.Reveal())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "transport").Inc()
		return nil, fmt.Errorf("%s request failed: %w: %w", op, scrub(err), domain.ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "api_error").Inc()
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	var res domain.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "decode").Inc()
		return nil, fmt.Errorf("decode %s response: %w: %w", op, err, domain.ErrUpstream)
	}
	if res == nil {
		res = domain.Result{}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "success").Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(duration.Seconds())

	c.logger.Debug("SEC API request completed",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	return res, nil
}

// scrub drops the request URL from transport errors; it may carry query values.
func scrub(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
