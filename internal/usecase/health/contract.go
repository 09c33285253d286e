package health

import "context"

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// UpstreamChecker checks SEC API reachability.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) error
}
