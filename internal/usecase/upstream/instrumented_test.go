package upstream

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
)

type mockClient struct {
	result domain.Result
	err    error
}

func (m *mockClient) GetFilings(_ context.Context, _ filing.Params) (domain.Result, error) {
	return m.result, m.err
}

func (m *mockClient) FullTextSearch(_ context.Context, _ fulltext.Params) (domain.Result, error) {
	return m.result, m.err
}

func TestGetFilings_Success(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewInstrumentedClient(&mockClient{result: domain.Result{"total": 2}}, zap.New(core))

	p, _ := filing.New("AAPL", filing.WithFormType("10-K"))
	res, err := c.GetFilings(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res["total"] != 2 {
		t.Errorf("result = %v", res)
	}

	entries := logs.FilterMessage("Filing lookup completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one debug entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["ticker"] != "AAPL" {
		t.Errorf("ticker field = %v", entries[0].ContextMap()["ticker"])
	}
}

func TestGetFilings_Error(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cause := errors.New("503")
	c := NewInstrumentedClient(&mockClient{err: cause}, zap.New(core))

	p, _ := filing.New("AAPL")
	_, err := c.GetFilings(context.Background(), p)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if logs.FilterMessage("Filing lookup failed").Len() != 1 {
		t.Error("expected error log entry")
	}
}

func TestFullTextSearch_DoesNotLogQueryText(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewInstrumentedClient(&mockClient{result: domain.Result{}}, zap.New(core))

	_, err := c.FullTextSearch(context.Background(), fulltext.New("confidential merger target"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok && strings.Contains(s, "confidential") {
				t.Fatalf("query text logged: %v", e.ContextMap())
			}
		}
	}
	if logs.FilterMessage("Full-text search completed").Len() != 1 {
		t.Error("expected debug entry")
	}
}

func TestFullTextSearch_Error(t *testing.T) {
	c := NewInstrumentedClient(&mockClient{err: domain.ErrUpstream}, zap.NewNop())

	_, err := c.FullTextSearch(context.Background(), fulltext.New("x"))
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
