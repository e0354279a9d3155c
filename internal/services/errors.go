package services

import "errors"

// Every failure returned by RouteOptimizer wraps exactly one of these.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrProviderUnavailable  = errors.New("route provider unavailable")
	ErrSearchInfeasible     = errors.New("no feasible tour")
	ErrAssemblyInconsistent = errors.New("route assembly inconsistent")
)

const (
	KindInvalidInput         = "invalid_input"
	KindProviderUnavailable  = "provider_unavailable"
	KindSearchInfeasible     = "search_infeasible"
	KindAssemblyInconsistent = "assembly_inconsistent"
	KindInternal             = "internal"
)

// ErrorKind classifies err into a stable string used by logs, metrics and
// API responses. A nil error has kind "".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrProviderUnavailable):
		return KindProviderUnavailable
	case errors.Is(err, ErrSearchInfeasible):
		return KindSearchInfeasible
	case errors.Is(err, ErrAssemblyInconsistent):
		return KindAssemblyInconsistent
	default:
		return KindInternal
	}
}
