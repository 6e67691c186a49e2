package services

import (
	"errors"
	"fmt"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/pkg/errs"
)

// ErrInvalidRoute is returned when an otherwise complete order would move
// the company pickup away from the first position.
var ErrInvalidRoute = errors.New("invalid route")

// Assignment is one order index write produced by the reconciler.
type Assignment struct {
	Stop     *stop.Stop
	NewIndex int
}

// RouteReconciler maps an externally supplied order of stop references onto
// the round's persisted stops.
type RouteReconciler struct{}

// NewRouteReconciler creates a RouteReconciler.
func NewRouteReconciler() RouteReconciler {
	return RouteReconciler{}
}

// Reconcile resolves orderedIDs against stops and returns the index each
// stop takes: position k in orderedIDs becomes order index k. A pickup may be
// named by "company-<companyID>" or by its stop ID.
//
// Returns:
//   - errs.ObjectNotFoundError if an ID matches no stop of the round
//   - an error wrapping ErrInvalidOracleResponse if a stop is named twice or left out
//   - an error wrapping ErrInvalidRoute if the pickup is not first
func (RouteReconciler) Reconcile(r *round.Round, stops []*stop.Stop, orderedIDs []string) ([]Assignment, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*stop.Stop, len(stops))
	var pickup *stop.Stop
	for _, s := range stops {
		byID[s.ID()] = s
		if s.IsPickup() {
			pickup = s
		}
	}

	assignments := make([]Assignment, 0, len(orderedIDs))
	placed := make(map[kernel.UUID]bool, len(orderedIDs))

	for k, raw := range orderedIDs {
		target, err := resolve(r, byID, pickup, raw)
		if err != nil {
			return nil, err
		}

		if placed[target.ID()] {
			return nil, fmt.Errorf("%w: stop %s named twice", ErrInvalidOracleResponse, target.ID())
		}
		placed[target.ID()] = true

		assignments = append(assignments, Assignment{Stop: target, NewIndex: k})
	}

	if len(assignments) != len(stops) {
		return nil, fmt.Errorf("%w: %d of %d stops named", ErrInvalidOracleResponse, len(assignments), len(stops))
	}

	if pickup != nil && assignments[0].Stop != pickup {
		return nil, fmt.Errorf("%w: company pickup must be first", ErrInvalidRoute)
	}

	return assignments, nil
}

func resolve(r *round.Round, byID map[kernel.UUID]*stop.Stop, pickup *stop.Stop, raw string) (*stop.Stop, error) {
	ref, err := ParseStopRef(raw)
	if err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("stop", raw, err)
	}

	if ref.IsPickup() {
		if pickup == nil || r.Company() == nil || !r.Company().IsEqual(ref.ID()) {
			return nil, errs.NewObjectNotFoundError("pickup", raw)
		}
		return pickup, nil
	}

	s, ok := byID[ref.ID()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("stop", raw)
	}
	return s, nil
}
