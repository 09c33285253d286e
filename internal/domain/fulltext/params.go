package fulltext

// DefaultLimit is the page size used when the caller does not set one.
const DefaultLimit = 50

// Params is a full-text search over filing contents.
type Params struct {
	query     string
	formTypes []string
	dateFrom  string
	dateTo    string
	limit     int
}

// Option sets an optional search field.
type Option func(*Params)

// WithFormTypes restricts results to the given form types, order preserved.
func WithFormTypes(formTypes ...string) Option {
	return func(p *Params) {
		if len(formTypes) == 0 {
			return
		}
		p.formTypes = append([]string(nil), formTypes...)
	}
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

// New builds search parameters for query.
// An empty query is allowed: the routed path rejects it earlier,
// explicit callers get whatever the SEC API answers.
func New(query string, opts ...Option) Params {
	p := Params{query: query, limit: DefaultLimit}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// Query returns the search text.
func (p Params) Query() string { return p.query }

// FormTypes returns a copy of the form filter, nil when unset.
func (p Params) FormTypes() []string {
	if p.formTypes == nil {
		return nil
	}
	return append([]string(nil), p.formTypes...)
}

// DateFrom returns the lower date bound, empty when unset.
func (p Params) DateFrom() string { return p.dateFrom }

// DateTo returns the upper date bound, empty when unset.
func (p Params) DateTo() string { return p.dateTo }

// Limit returns the maximum number of hits requested.
func (p Params) Limit() int { return p.limit }
