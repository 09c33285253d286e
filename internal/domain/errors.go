package domain

import (
	"errors"
)

var (
	// ErrConfiguration signals a missing or unusable setting (e.g. no API key).
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidInput signals a request rejected before reaching the SEC API.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyQuery signals an empty routed query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrUpstream signals a failure reported by the SEC API client.
	ErrUpstream = errors.New("sec api error")

	// ErrToolInvocation matches errors surfaced by the routed entry point.
	ErrToolInvocation = errors.New("tool invocation error")
	// ErrValue matches errors surfaced by the explicit search operations.
	ErrValue = errors.New("value error")
)

// Kind classifies the cause of an Error.
type Kind int

// Error kinds.
const (
	KindUpstream Kind = iota
	KindConfiguration
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "upstream"
	}
}

// Surface identifies which entry point produced an Error.
type Surface int

// Error surfaces.
const (
	// SurfaceTool is the routed Run/Invoke path.
	SurfaceTool Surface = iota
	// SurfaceValue is FilingSearch / FullTextSearch.
	SurfaceValue
)

// Error is the tagged error returned by the tool adapter.
// The message is "<Op>: <cause>", the cause stays reachable through Unwrap.
type Error struct {
	Kind    Kind
	Surface Surface
	Op      string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target names this error's kind or surface.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrToolInvocation:
		return e.Surface == SurfaceTool
	case ErrValue:
		return e.Surface == SurfaceValue
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrUpstream:
		return e.Kind == KindUpstream
	}
	return false
}

// ToolError wraps err as a routed-path failure.
func ToolError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Surface: SurfaceTool, Op: op, Err: err}
}

// ValueError wraps err as an explicit-operation failure.
func ValueError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Surface: SurfaceValue, Op: op, Err: err}
}

// KindOf returns the kind carried by err, defaulting to KindUpstream.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrConfiguration) {
		return KindConfiguration
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrEmptyQuery) {
		return KindInvalidInput
	}
	return KindUpstream
}
