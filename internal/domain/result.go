package domain

import "context"

// KeyPrefix is the key namespace for everything sectool stores.
const KeyPrefix = "sectool:"

// Result is the SEC API response, passed through without interpretation.
type Result map[string]any

// HealthChecker verifies SEC API availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
