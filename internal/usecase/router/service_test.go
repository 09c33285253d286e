package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
)

// --- Mocks ---

type mockClient struct {
	filingsResult domain.Result
	filingsErr    error
	textResult    domain.Result
	textErr       error

	filingsCalls []filing.Params
	textCalls    []fulltext.Params
}

func (m *mockClient) GetFilings(_ context.Context, p filing.Params) (domain.Result, error) {
	m.filingsCalls = append(m.filingsCalls, p)
	return m.filingsResult, m.filingsErr
}

func (m *mockClient) FullTextSearch(_ context.Context, p fulltext.Params) (domain.Result, error) {
	m.textCalls = append(m.textCalls, p)
	return m.textResult, m.textErr
}

type mockRoutes struct {
	routes []string
	errs   []error
}

func (m *mockRoutes) RecordRoute(route string, err error) {
	m.routes = append(m.routes, route)
	m.errs = append(m.errs, err)
}

func newTestService(t *testing.T, c *mockClient) *Service {
	t.Helper()
	svc, err := New(domain.NewCredential("test-key"), func(domain.Credential) (Client, error) {
		return c, nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

// --- Construction ---

func TestNew_EmptyCredential(t *testing.T) {
	called := false
	_, err := New(domain.NewCredential(""), func(domain.Credential) (Client, error) {
		called = true
		return &mockClient{}, nil
	})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if called {
		t.Error("factory must not be called without a credential")
	}
}

func TestNew_NilFactory(t *testing.T) {
	_, err := New(domain.NewCredential("k"), nil)
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNew_FactoryCalledOnceWithCredential(t *testing.T) {
	var got []string
	_, err := New(domain.ResolveCredential("explicit-key", "default-key"), func(c domain.Credential) (Client, error) {
		got = append(got, c.Reveal())
		return &mockClient{}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "explicit-key" {
		t.Fatalf("factory calls = %v, want [explicit-key]", got)
	}
}

func TestNew_FactoryError(t *testing.T) {
	_, err := New(domain.NewCredential("k"), func(domain.Credential) (Client, error) {
		return nil, errors.New("bad base url")
	})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad base url") {
		t.Errorf("cause missing from %q", err.Error())
	}
}

// --- Run ---

func TestRun_TickerRoutesToFilings(t *testing.T) {
	for _, q := range []string{"TSLA", "A", "HELLO"} {
		t.Run(q, func(t *testing.T) {
			c := &mockClient{filingsResult: domain.Result{"filings": []any{}}}
			svc := newTestService(t, c)

			res, err := svc.Run(context.Background(), q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := res["filings"]; !ok {
				t.Errorf("result not passed through: %v", res)
			}
			if len(c.textCalls) != 0 {
				t.Error("full-text search must not be called for a ticker")
			}
			if len(c.filingsCalls) != 1 {
				t.Fatalf("GetFilings calls = %d, want 1", len(c.filingsCalls))
			}
			p := c.filingsCalls[0]
			if p.Ticker() != q || p.Limit() != 5 {
				t.Errorf("GetFilings(ticker=%q, limit=%d), want (%q, 5)", p.Ticker(), p.Limit(), q)
			}
			if p.FormType() != "" || p.DateFrom() != "" || p.DateTo() != "" {
				t.Error("routed lookup must not set filters")
			}
		})
	}
}

func TestRun_TextRoutesToFullText(t *testing.T) {
	for _, q := range []string{"artificial intelligence", "tsla", "Tesla", "GOOGLE", "BRK.B", "AB1"} {
		t.Run(q, func(t *testing.T) {
			c := &mockClient{textResult: domain.Result{"hits": 3}}
			svc := newTestService(t, c)

			res, err := svc.Run(context.Background(), q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res["hits"] != 3 {
				t.Errorf("result not passed through: %v", res)
			}
			if len(c.filingsCalls) != 0 {
				t.Error("GetFilings must not be called for free text")
			}
			if len(c.textCalls) != 1 {
				t.Fatalf("FullTextSearch calls = %d, want 1", len(c.textCalls))
			}
			p := c.textCalls[0]
			if p.Query() != q || p.Limit() != 5 {
				t.Errorf("FullTextSearch(query=%q, limit=%d), want (%q, 5)", p.Query(), p.Limit(), q)
			}
			if p.FormTypes() != nil {
				t.Errorf("routed search must not set form types, got %v", p.FormTypes())
			}
		})
	}
}

func TestRun_EmptyQueryRejected(t *testing.T) {
	c := &mockClient{}
	svc := newTestService(t, c)

	_, err := svc.Run(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidInput) || !errors.Is(err, domain.ErrToolInvocation) {
		t.Fatalf("expected invalid-input tool error, got %v", err)
	}
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery cause, got %v", err)
	}
	if len(c.filingsCalls)+len(c.textCalls) != 0 {
		t.Error("client must not be called for an empty query")
	}
}

func TestRun_FilingsError(t *testing.T) {
	cause := errors.New("401 unauthorized")
	svc := newTestService(t, &mockClient{filingsErr: cause})

	_, err := svc.Run(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrToolInvocation) {
		t.Errorf("expected tool invocation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Error searching filings:") || !strings.Contains(err.Error(), "401 unauthorized") {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause must be wrapped")
	}
}

func TestRun_TextError(t *testing.T) {
	svc := newTestService(t, &mockClient{textErr: errors.New("timeout")})

	_, err := svc.Run(context.Background(), "climate risk")
	if !errors.Is(err, domain.ErrToolInvocation) || !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Error searching text:") || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestRun_RecordsRoute(t *testing.T) {
	routes := &mockRoutes{}
	svc := newTestService(t, &mockClient{textErr: errors.New("down")}).WithRouteRecorder(routes)

	_, _ = svc.Run(context.Background(), "MSFT")
	_, _ = svc.Run(context.Background(), "cyber incident")

	if len(routes.routes) != 2 || routes.routes[0] != "filings" || routes.routes[1] != "full_text" {
		t.Fatalf("routes = %v", routes.routes)
	}
	if routes.errs[0] != nil || routes.errs[1] == nil {
		t.Errorf("errs = %v", routes.errs)
	}
}

// --- Explicit operations ---

func TestFilingSearch_DefaultsForwarded(t *testing.T) {
	c := &mockClient{filingsResult: domain.Result{"ok": true}}
	svc := newTestService(t, c)

	p, err := filing.New("AAPL")
	if err != nil {
		t.Fatalf("filing.New: %v", err)
	}
	if _, err := svc.FilingSearch(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.filingsCalls[0]
	if got.Ticker() != "AAPL" || got.FormType() != "" || got.DateFrom() != "" || got.DateTo() != "" || got.Limit() != 50 {
		t.Errorf("forwarded %+v", got)
	}
}

func TestFilingSearch_Error(t *testing.T) {
	svc := newTestService(t, &mockClient{filingsErr: errors.New("bad ticker")})

	p, _ := filing.New("ZZZZ", filing.WithFormType("10-K"))
	_, err := svc.FilingSearch(context.Background(), p)
	if !errors.Is(err, domain.ErrValue) || errors.Is(err, domain.ErrToolInvocation) {
		t.Fatalf("expected value error, got %v", err)
	}
	if err.Error() != "Error in filing search: bad ticker" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestFullTextSearch_DefaultsForwarded(t *testing.T) {
	c := &mockClient{textResult: domain.Result{}}
	svc := newTestService(t, c)

	if _, err := svc.FullTextSearch(context.Background(), fulltext.New("artificial intelligence")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.textCalls[0]
	if got.Query() != "artificial intelligence" || got.FormTypes() != nil ||
		got.DateFrom() != "" || got.DateTo() != "" || got.Limit() != 50 {
		t.Errorf("forwarded %+v", got)
	}
}

func TestFullTextSearch_ParamsForwardedUnchanged(t *testing.T) {
	c := &mockClient{textResult: domain.Result{}}
	svc := newTestService(t, c)

	p := fulltext.New("going concern",
		fulltext.WithFormTypes("10-K", "10-Q"),
		fulltext.WithDateRange("2020-01-01", "not-a-date"),
		fulltext.WithLimit(11),
	)
	if _, err := svc.FullTextSearch(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.textCalls[0]
	forms := got.FormTypes()
	if len(forms) != 2 || forms[0] != "10-K" || forms[1] != "10-Q" {
		t.Errorf("form types = %v", forms)
	}
	if got.DateTo() != "not-a-date" || got.Limit() != 11 {
		t.Errorf("forwarded %+v", got)
	}
}

func TestFullTextSearch_Error(t *testing.T) {
	svc := newTestService(t, &mockClient{textErr: errors.New("rate limited")})

	_, err := svc.FullTextSearch(context.Background(), fulltext.New("x"))
	if !errors.Is(err, domain.ErrValue) {
		t.Fatalf("expected value error, got %v", err)
	}
	if err.Error() != "Error in full text search: rate limited" {
		t.Errorf("message = %q", err.Error())
	}
}
