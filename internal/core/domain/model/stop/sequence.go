package stop

import (
	"errors"
	"fmt"

	"roundplanner/internal/pkg/errs"
)

// ValidateSequence checks the structural invariants of a round's stops,
// given in any order:
//   - order indices are exactly 0..N-1
//   - at most one CompanyPickup, and it sits at index 0
//   - no shipment appears twice
//
// Every violation is reported; the joined error wraps errs.ErrInconsistentState.
func ValidateSequence(stops []*Stop) error {
	var problems []error

	seenIndex := make(map[int]bool, len(stops))
	seenShipment := make(map[string]bool, len(stops))
	pickups := 0

	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return err
		}

		idx := s.OrderIndex()
		switch {
		case idx >= len(stops):
			problems = append(problems, fmt.Errorf("stop %s: order index %d outside 0..%d", s.ID(), idx, len(stops)-1))
		case seenIndex[idx]:
			problems = append(problems, fmt.Errorf("stop %s: order index %d used twice", s.ID(), idx))
		}
		seenIndex[idx] = true

		if s.IsPickup() {
			pickups++
			if idx != 0 {
				problems = append(problems, fmt.Errorf("pickup %s at index %d", s.ID(), idx))
			}
		}

		if sh := s.Shipment(); sh != nil {
			key := sh.String()
			if seenShipment[key] {
				problems = append(problems, fmt.Errorf("shipment %s on more than one stop", key))
			}
			seenShipment[key] = true
		}
	}

	if pickups > 1 {
		problems = append(problems, fmt.Errorf("%d pickups in one round", pickups))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", errs.ErrInconsistentState, errors.Join(problems...))
}
