package round

import (
	"errors"
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"
)

var (
	// ErrRoundIsNotConstructed is returned when a Round instance was not created through
	// NewRound or RestoreRound.
	ErrRoundIsNotConstructed = errors.New("Round must be created via NewRound or RestoreRound constructor")
)

// Round is one courier's delivery run for a given date. It is the aggregate
// root whose row is locked while its stops are being rewritten.
//
// Round follows these invariants:
//   - Must have a valid unique identifier
//   - Company trips (CompanyTrip, CompanyTripBatch) always reference a company
//   - Individual rounds never reference a company
//   - A completed round stays completed
type Round struct {
	id        kernel.UUID
	date      time.Time
	courierID *kernel.UUID
	kind      Kind
	companyID *kernel.UUID
	status    Status

	isConstructed bool
}

// NewRound creates a round in Assigned status.
//
// Parameters:
//   - id: unique identifier for the round
//   - date: the day the round runs, truncated to midnight UTC
//   - courierID: the assigned courier, or nil
//   - kind: Individual, CompanyTrip or CompanyTripBatch
//   - companyID: the pickup company; required for company trips, forbidden otherwise
//
// Example:
//
//	companyID := kernel.NewUUID()
//	r, err := round.NewRound(kernel.NewUUID(), time.Now(), nil, round.CompanyTrip, &companyID)
func NewRound(id kernel.UUID, date time.Time, courierID *kernel.UUID, kind Kind, companyID *kernel.UUID) (*Round, error) {
	return RestoreRound(id, date, courierID, kind, companyID, Assigned)
}

// RestoreRound rebuilds a round from persisted state, applying the same
// validation as NewRound plus a status check.
func RestoreRound(
	id kernel.UUID,
	date time.Time,
	courierID *kernel.UUID,
	kind Kind,
	companyID *kernel.UUID,
	status Status,
) (*Round, error) {
	r := &Round{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setDate(date),
		r.setCourier(courierID),
		r.setKindAndCompany(kind, companyID),
		r.setInitialStatus(status),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Round instance was properly constructed.
func (r *Round) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRoundIsNotConstructed
	}

	return nil
}

// IsEqual compares two rounds by identifier.
func (r *Round) IsEqual(other *Round) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the round's unique identifier.
func (r *Round) ID() kernel.UUID {
	return r.id
}

// Date returns the day the round runs.
func (r *Round) Date() time.Time {
	return r.date
}

// Courier returns the assigned courier's ID, or nil.
func (r *Round) Courier() *kernel.UUID {
	return r.courierID
}

// Kind returns the round kind.
func (r *Round) Kind() Kind {
	return r.kind
}

// Company returns the pickup company of a company trip, or nil.
func (r *Round) Company() *kernel.UUID {
	return r.companyID
}

// Status returns the current status.
func (r *Round) Status() Status {
	return r.status
}

// SetStatus moves the round to next, enforcing Status.ValidateTransition.
// Setting the current status again succeeds and changes nothing.
func (r *Round) SetStatus(next Status) error {
	if err := r.status.ValidateTransition(next); err != nil {
		return err
	}

	r.status = next
	return nil
}

func (r *Round) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Round) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("round date")
	}
	y, m, d := date.UTC().Date()
	r.date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}

func (r *Round) setCourier(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	id := *courierID
	r.courierID = &id
	return nil
}

// setKindAndCompany validates the kind together with the company reference,
// since one decides whether the other is allowed.
func (r *Round) setKindAndCompany(kind Kind, companyID *kernel.UUID) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	switch {
	case kind.IsCompanyTrip() && companyID == nil:
		return errs.NewValueIsRequiredError("company ID for " + kind.String() + " round")
	case !kind.IsCompanyTrip() && companyID != nil:
		return errs.NewValueIsInvalidError("company ID on " + kind.String() + " round")
	}

	r.kind = kind
	if companyID != nil {
		if err := companyID.Validate(); err != nil {
			return err
		}
		id := *companyID
		r.companyID = &id
	}
	return nil
}

func (r *Round) setInitialStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
