package services

import (
	"fmt"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/pkg/errs"
)

// Direction is the way a stop moves by one position.
type Direction int

const (
	// Up moves a stop towards index 0.
	Up Direction = iota + 1
	// Down moves a stop towards the end of the round.
	Down
)

// ParseDirection accepts "up" and "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is neither up nor down", s))
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// MovePlan describes the outcome of planning a single-step move.
// When Noop is false, Moving takes Neighbour's order index and Neighbour
// takes the one Moving had.
type MovePlan struct {
	Noop      bool
	Moving    *stop.Stop
	Neighbour *stop.Stop
}

// MovingTo is the index Moving is written to.
func (p MovePlan) MovingTo() int {
	return p.Neighbour.OrderIndex()
}

// NeighbourTo is the index Neighbour is written to.
func (p MovePlan) NeighbourTo() int {
	return p.Moving.OrderIndex()
}

// StopSequencer plans manual reorders of a round. It never writes: the
// caller applies the plan through the stop repository.
//
// Boundary rules:
//   - the first stop cannot move up, the last stop cannot move down
//   - the company pickup never moves, and no stop moves above it
//
// Boundary moves are planned as no-ops, which callers report as success
// without writing anything.
type StopSequencer struct{}

// NewStopSequencer creates a StopSequencer.
func NewStopSequencer() StopSequencer {
	return StopSequencer{}
}

// Plan locates stopID in stops (ordered by index, as returned by the stop
// repository) and computes the swap for moving it one position in dir.
//
// Returns:
//   - errs.ObjectNotFoundError if stopID is not in the round
//   - an error wrapping errs.ErrInconsistentState if the neighbour does not
//     hold the adjacent index, which means the stored order is corrupt
func (StopSequencer) Plan(stops []*stop.Stop, stopID kernel.UUID, dir Direction) (MovePlan, error) {
	if dir != Up && dir != Down {
		return MovePlan{}, errs.NewValueIsInvalidError("direction")
	}

	i := -1
	for pos, s := range stops {
		if s.ID().IsEqual(stopID) {
			i = pos
			break
		}
	}
	if i < 0 {
		return MovePlan{}, errs.NewObjectNotFoundError("stop", stopID)
	}

	moving := stops[i]
	if moving.IsPickup() {
		return MovePlan{Noop: true, Moving: moving}, nil
	}

	j := i + 1
	if dir == Up {
		if i == 0 {
			return MovePlan{Noop: true, Moving: moving}, nil
		}
		j = i - 1
	} else if i == len(stops)-1 {
		return MovePlan{Noop: true, Moving: moving}, nil
	}

	neighbour := stops[j]
	want := moving.OrderIndex() + 1
	if dir == Up {
		want = moving.OrderIndex() - 1
	}
	if neighbour.OrderIndex() != want {
		return MovePlan{}, fmt.Errorf("%w: stop %s at index %d has neighbour %s at index %d, expected %d",
			errs.ErrInconsistentState, moving.ID(), moving.OrderIndex(), neighbour.ID(), neighbour.OrderIndex(), want)
	}

	if neighbour.IsPickup() {
		return MovePlan{Noop: true, Moving: moving}, nil
	}

	return MovePlan{Moving: moving, Neighbour: neighbour}, nil
}
