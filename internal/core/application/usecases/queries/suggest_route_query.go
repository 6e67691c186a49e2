// Package queries contains read operations for retrieving round state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never write: suggesting a route leaves the stored order untouched.
package queries

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/guard"
)

var (
	ErrSuggestRouteQueryIsNotConstructed = errors.New(
		"SuggestRouteQuery must be created via NewSuggestRouteQuery constructor",
	)
)

// SuggestRouteQuery asks the route oracle for a better visiting order of a round.
//
// Example:
//
//	query, err := NewSuggestRouteQuery(roundID)
//	if err != nil {
//	    return err
//	}
//	candidate, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrInsufficientStops) {
//	    // nothing to optimize
//	}
type SuggestRouteQuery struct {
	roundID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewSuggestRouteQuery creates the query for roundID.
func NewSuggestRouteQuery(roundID kernel.UUID) (SuggestRouteQuery, error) {
	if err := roundID.Validate(); err != nil {
		return SuggestRouteQuery{}, err
	}
	return SuggestRouteQuery{roundID: roundID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q SuggestRouteQuery) Validate() error {
	return q.guard.Validate(ErrSuggestRouteQueryIsNotConstructed)
}

func (q SuggestRouteQuery) RoundID() kernel.UUID {
	return q.roundID
}

// SuggestRouteQueryResponse is a validated candidate order. It is not applied.
//
// OrderedIDs uses the same identifiers the apply command accepts.
// CurrentDistanceKm and CandidateDistanceKm are nil when the distance
// provider could not estimate them.
type SuggestRouteQueryResponse struct {
	OrderedIDs               []string
	EstimatedTotalDistanceKm *float64
	Notes                    *string
	CurrentDistanceKm        *float64
	CandidateDistanceKm      *float64
}
