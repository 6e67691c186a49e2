package queries

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/pkg/guard"
)

var (
	ErrGetRoundStopsQueryIsNotConstructed = errors.New(
		"GetRoundStopsQuery must be created via NewGetRoundStopsQuery constructor",
	)
)

// GetRoundStopsQuery lists a round's stops in visiting order with their
// derived coordinates.
type GetRoundStopsQuery struct {
	roundID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetRoundStopsQuery creates the query for roundID.
func NewGetRoundStopsQuery(roundID kernel.UUID) (GetRoundStopsQuery, error) {
	if err := roundID.Validate(); err != nil {
		return GetRoundStopsQuery{}, err
	}
	return GetRoundStopsQuery{roundID: roundID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRoundStopsQuery) Validate() error {
	return q.guard.Validate(ErrGetRoundStopsQueryIsNotConstructed)
}

func (q GetRoundStopsQuery) RoundID() kernel.UUID {
	return q.roundID
}

// GetRoundStopsQueryResponse is one stop of the read model.
// Ref is the identifier accepted by the apply command. Location is nil for
// stops whose shipment or company has no coordinates.
type GetRoundStopsQueryResponse struct {
	ID         kernel.UUID
	Ref        string
	OrderIndex int
	Kind       stop.Kind
	ShipmentID *kernel.UUID
	Label      string
	Location   *kernel.Location
}
