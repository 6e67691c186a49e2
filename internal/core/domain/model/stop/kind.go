package stop

import (
	"fmt"

	"roundplanner/internal/pkg/errs"
)

// Kind distinguishes the company pickup from client deliveries.
type Kind int

const (
	// UnknownKind catches uninitialized values.
	UnknownKind Kind = iota

	// CompanyPickup is where a company trip starts. A round has at most one.
	CompanyPickup

	// ClientDelivery drops one shipment at its destination.
	ClientDelivery
)

var kindNames = map[Kind]string{
	CompanyPickup:  "company-pickup",
	ClientDelivery: "client-delivery",
}

// ParseKind converts a wire name into a Kind.
func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("stop kind", fmt.Errorf("%q is not a valid kind", s))
}

// Validate rejects UnknownKind and out-of-range values.
func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stop kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
