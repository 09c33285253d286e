package sectool

import (
	"context"

	"github.com/kailas-cloud/sectool/internal/domain/filing"
)

// Result is the SEC API response, returned verbatim.
type Result = map[string]any

// DefaultLimit applies when a query leaves Limit at zero or below.
const DefaultLimit = filing.DefaultLimit

// FilingQuery selects filings of one company. Dates are passed through unvalidated.
type FilingQuery struct {
	Ticker   string
	FormType string
	DateFrom string
	DateTo   string
	Limit    int
}

// FullTextQuery searches filing text. FormTypes order is preserved.
type FullTextQuery struct {
	Query     string
	FormTypes []string
	DateFrom  string
	DateTo    string
	Limit     int
}

// APIClient is an SEC API implementation supplied through WithClient.
// Limits arrive already resolved.
type APIClient interface {
	GetFilings(ctx context.Context, q FilingQuery) (Result, error)
	FullTextSearch(ctx context.Context, q FullTextQuery) (Result, error)
}
