package router

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
	"github.com/kailas-cloud/sectool/internal/domain/query"
	"github.com/kailas-cloud/sectool/internal/logger"
)

// Error prefixes. Agents see these verbatim, keep them stable.
const (
	opSearchFilings  = "Error searching filings"
	opSearchText     = "Error searching text"
	opInvalidQuery   = "Error invalid query"
	opFilingSearch   = "Error in filing search"
	opFullTextSearch = "Error in full text search"
)

// Service routes a free-text query to filing lookup or full-text search.
type Service struct {
	client Client
	routes RouteRecorder
}

// New builds the SEC API client for cred and wraps it in a Service.
// factory is called exactly once.
func New(cred domain.Credential, factory ClientFactory) (*Service, error) {
	if cred.Empty() {
		return nil, domain.ToolError(domain.KindConfiguration,
			"sec api key is required", domain.ErrConfiguration)
	}
	if factory == nil {
		return nil, domain.ToolError(domain.KindConfiguration,
			"sec api client factory is required", domain.ErrConfiguration)
	}
	client, err := factory(cred)
	if err != nil {
		return nil, domain.ToolError(domain.KindConfiguration, "build sec api client", err)
	}
	return &Service{client: client}, nil
}

// WithRouteRecorder attaches route metrics.
func (s *Service) WithRouteRecorder(r RouteRecorder) *Service {
	s.routes = r
	return s
}

// Run classifies text and delegates with limit query.RoutedLimit.
// Failures are tool-invocation errors naming the branch that failed.
func (s *Service) Run(ctx context.Context, text string) (domain.Result, error) {
	q, err := query.New(text)
	if err != nil {
		return nil, domain.ToolError(domain.KindInvalidInput, opInvalidQuery, err)
	}

	route := q.Route()
	log := logger.FromContext(ctx).With(zap.String("route", string(route)))

	var res domain.Result
	switch route {
	case query.Filings:
		p, perr := filing.New(q.Text(), filing.WithLimit(query.RoutedLimit))
		if perr != nil {
			return nil, domain.ToolError(domain.KindInvalidInput, opSearchFilings, perr)
		}
		res, err = s.client.GetFilings(ctx, p)
		if err != nil {
			err = domain.ToolError(domain.KindOf(err), opSearchFilings, err)
		}
	default:
		res, err = s.client.FullTextSearch(ctx, fulltext.New(q.Text(), fulltext.WithLimit(query.RoutedLimit)))
		if err != nil {
			err = domain.ToolError(domain.KindOf(err), opSearchText, err)
		}
	}

	if s.routes != nil {
		s.routes.RecordRoute(string(route), err)
	}
	if err != nil {
		log.Warn("Routed query failed", zap.Error(err))
		return nil, err
	}
	log.Debug("Routed query completed", zap.Int("keys", len(res)))
	return res, nil
}

// FilingSearch forwards p unchanged to the filing lookup.
func (s *Service) FilingSearch(ctx context.Context, p filing.Params) (domain.Result, error) {
	res, err := s.client.GetFilings(ctx, p)
	if err != nil {
		return nil, domain.ValueError(domain.KindOf(err), opFilingSearch, err)
	}
	return res, nil
}

// FullTextSearch forwards p unchanged to the full-text search.
func (s *Service) FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error) {
	res, err := s.client.FullTextSearch(ctx, p)
	if err != nil {
		return nil, domain.ValueError(domain.KindOf(err), opFullTextSearch, err)
	}
	return res, nil
}
