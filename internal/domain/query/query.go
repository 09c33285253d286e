package query

import (
	"github.com/kailas-cloud/sectool/internal/domain"
)

// MaxTickerLength is the longest string still treated as a ticker.
const MaxTickerLength = 5

// RoutedLimit is the result cap applied on the routed path.
const RoutedLimit = 5

// Route is the SEC API operation a query is sent to.
type Route string

// Routes.
const (
	Filings  Route = "filings"
	FullText Route = "full_text"
)

// Query is a validated routed query.
type Query struct {
	text string
}

// New rejects the empty string and keeps everything else verbatim.
func New(text string) (Query, error) {
	if text == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	return Query{text: text}, nil
}

// Text returns the raw query.
func (q Query) Text() string { return q.text }

// Route classifies the query. Purely syntactic: "HELLO" is a ticker too.
func (q Query) Route() Route {
	if IsTicker(q.text) {
		return Filings
	}
	return FullText
}

// IsTicker reports whether s is 1 to MaxTickerLength ASCII uppercase letters.
func IsTicker(s string) bool {
	if s == "" || len(s) > MaxTickerLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
