package ports

import (
	"context"
	"errors"
)

var (
	// ErrOracleTimeout is returned when the route oracle did not answer in time.
	ErrOracleTimeout = errors.New("route oracle timeout")

	// ErrProviderUnavailable is returned when an external provider fails or
	// its circuit breaker is open.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// OptimizationStop is one stop sent to the route oracle.
type OptimizationStop struct {
	ID    string
	Label string
	Lat   float64
	Lng   float64
	Kind  string
}

// OptimizationRequest asks the oracle for a visiting order of Stops.
type OptimizationRequest struct {
	Stops []OptimizationStop
}

// OptimizationResponse is the oracle's unvalidated answer.
type OptimizationResponse struct {
	OrderedIDs               []string
	EstimatedTotalDistanceKm *float64
	Notes                    *string
}

// RouteOptimizer calls the external route oracle.
// Implementations return ErrOracleTimeout or ErrProviderUnavailable
// (possibly wrapped) for transport failures.
type RouteOptimizer interface {
	Optimize(ctx context.Context, req OptimizationRequest) (OptimizationResponse, error)
}
