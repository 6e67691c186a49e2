package distance

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
)

// StraightLineEstimator sums great-circle distances between consecutive
// waypoints. It serves when no routing provider is configured.
type StraightLineEstimator struct{}

func NewStraightLineEstimator() StraightLineEstimator {
	return StraightLineEstimator{}
}

func (StraightLineEstimator) EstimateDistance(_ context.Context, waypoints []kernel.Location) (float64, error) {
	if len(waypoints) < 2 {
		return 0, ErrTooFewWaypoints
	}

	total := 0.0
	for i := 1; i < len(waypoints); i++ {
		leg, err := waypoints[i-1].DistanceKm(waypoints[i])
		if err != nil {
			return 0, err
		}
		total += leg
	}
	return total, nil
}
