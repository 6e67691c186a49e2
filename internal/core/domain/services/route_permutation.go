package services

import (
	"errors"
	"fmt"
)

// ErrInvalidOracleResponse is returned when a proposed order is not exactly
// a permutation of the round's stops.
var ErrInvalidOracleResponse = errors.New("invalid oracle response")

// RoutePermutation gates externally computed orders. An order is trusted
// only if it names every requested ID exactly once and nothing else.
type RoutePermutation struct{}

// NewRoutePermutation creates a RoutePermutation.
func NewRoutePermutation() RoutePermutation {
	return RoutePermutation{}
}

// Check returns an error wrapping ErrInvalidOracleResponse unless ordered is
// a permutation of requested.
func (RoutePermutation) Check(requested, ordered []string) error {
	remaining := make(map[string]bool, len(requested))
	for _, id := range requested {
		remaining[id] = true
	}

	seen := make(map[string]bool, len(ordered))
	for _, id := range ordered {
		if seen[id] {
			return fmt.Errorf("%w: %q appears twice", ErrInvalidOracleResponse, id)
		}
		seen[id] = true

		if !remaining[id] {
			return fmt.Errorf("%w: %q was not requested", ErrInvalidOracleResponse, id)
		}
		delete(remaining, id)
	}

	if len(remaining) > 0 {
		return fmt.Errorf("%w: %d of %d stops missing", ErrInvalidOracleResponse, len(remaining), len(requested))
	}
	return nil
}

// PinFirst returns a copy of ordered with first moved to the front, keeping
// the relative order of everything else. ordered is returned unchanged if
// first is absent or already in front.
func (RoutePermutation) PinFirst(ordered []string, first string) []string {
	out := make([]string, 0, len(ordered))
	found := false
	for _, id := range ordered {
		if id == first {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		return append([]string(nil), ordered...)
	}
	return append([]string{first}, out...)
}
