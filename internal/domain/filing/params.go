package filing

import (
	"fmt"

	"github.com/kailas-cloud/sectool/internal/domain"
)

// DefaultLimit is the page size used when the caller does not set one.
const DefaultLimit = 50

// Params is a ticker-based filing lookup.
// Form type and dates are forwarded as-is; the SEC API validates them.
type Params struct {
	ticker   string
	formType string
	dateFrom string
	dateTo   string
	limit    int
}

// Option sets an optional lookup field.
type Option func(*Params)

// WithFormType filters by a single form type such as "10-K".
func WithFormType(formType string) Option {
	return func(p *Params) { p.formType = formType }
}

// WithDateRange bounds the filing date. Either side may be empty.
func WithDateRange(from, to string) Option {
	return func(p *Params) {
		p.dateFrom = from
		p.dateTo = to
	}
}

// WithLimit overrides DefaultLimit. Non-positive values keep the default.
func WithLimit(limit int) Option {
	return func(p *Params) {
		if limit > 0 {
			p.limit = limit
		}
	}
}

// New builds lookup parameters for ticker.
func New(ticker string, opts ...Option) (Params, error) {
	if ticker == "" {
		return Params{}, fmt.Errorf("ticker is required: %w", domain.ErrInvalidInput)
	}
	p := Params{ticker: ticker, limit: DefaultLimit}
	for _, o := range opts {
		o(&p)
	}
	return p, nil
}

// Ticker returns the company ticker.
func (p Params) Ticker() string { return p.ticker }

// FormType returns the form filter, empty when unset.
func (p Params) FormType() string { return p.formType }

// DateFrom returns the lower date bound, empty when unset.
func (p Params) DateFrom() string { return p.dateFrom }

// DateTo returns the upper date bound, empty when unset.
func (p Params) DateTo() string { return p.dateTo }

// Limit returns the maximum number of filings requested.
func (p Params) Limit() int { return p.limit }
