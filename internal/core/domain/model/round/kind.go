package round

import (
	"fmt"

	"roundplanner/internal/pkg/errs"
)

// Kind tells whether a round starts with a pickup at a company.
type Kind int

const (
	// UnknownKind catches uninitialized values.
	UnknownKind Kind = iota

	// Individual rounds only deliver to clients.
	Individual

	// CompanyTrip rounds start by picking up at one company.
	CompanyTrip

	// CompanyTripBatch rounds pick up a batch of shipments at one company.
	CompanyTripBatch
)

var kindNames = map[Kind]string{
	Individual:       "individual",
	CompanyTrip:      "company-trip",
	CompanyTripBatch: "company-trip-batch",
}

// ParseKind converts the wire name of a kind into a Kind.
func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("round kind", fmt.Errorf("%q is not a valid kind", s))
}

// Validate rejects UnknownKind and out-of-range values.
func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("round kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// IsCompanyTrip reports whether rounds of this kind require a company and
// carry a pickup stop.
func (k Kind) IsCompanyTrip() bool {
	return k == CompanyTrip || k == CompanyTripBatch
}

// String returns the wire name of the kind, or "unknown".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
