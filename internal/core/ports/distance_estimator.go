package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
)

// DistanceEstimator estimates the length in kilometres of a route visiting
// waypoints in order. At least two waypoints are required.
type DistanceEstimator interface {
	EstimateDistance(ctx context.Context, waypoints []kernel.Location) (float64, error)
}
