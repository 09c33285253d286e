package sectool

import "github.com/kailas-cloud/sectool/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrConfiguration  = domain.ErrConfiguration
	ErrInvalidInput   = domain.ErrInvalidInput
	ErrEmptyQuery     = domain.ErrEmptyQuery
	ErrUpstream       = domain.ErrUpstream
	ErrToolInvocation = domain.ErrToolInvocation
	ErrValue          = domain.ErrValue
)

// Error is the tagged error returned by Tool methods. Use errors.As to inspect it.
type Error = domain.Error
