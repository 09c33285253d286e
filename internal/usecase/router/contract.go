package router

import (
	"context"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
)

// Client is the SEC API the router delegates to.
type Client interface {
	GetFilings(ctx context.Context, p filing.Params) (domain.Result, error)
	FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error)
}

// ClientFactory builds a Client bound to a credential.
type ClientFactory func(cred domain.Credential) (Client, error)

// RouteRecorder counts routed queries.
type RouteRecorder interface {
	RecordRoute(route string, err error)
}
