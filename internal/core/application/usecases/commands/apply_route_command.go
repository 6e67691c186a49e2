package commands

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"
	"roundplanner/internal/pkg/guard"
)

var ErrApplyRouteCommandIsNotConstructed = errors.New(
	"ApplyRouteCommand must be created via NewApplyRouteCommand constructor",
)

// ApplyRouteCommand replaces a round's stop order with orderedIDs. IDs are
// either stop IDs or "company-<companyID>" for the pickup.
type ApplyRouteCommand struct { //nolint:recvcheck //using for validation
	roundID    kernel.UUID
	orderedIDs []string

	guard guard.ConstructorGuard
}

// NewApplyRouteCommand creates the command. orderedIDs must not be empty.
func NewApplyRouteCommand(roundID kernel.UUID, orderedIDs []string) (ApplyRouteCommand, error) {
	cmd := ApplyRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRoundID(roundID),
		cmd.setOrderedIDs(orderedIDs),
	); err != nil {
		return ApplyRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyRouteCommand) Validate() error {
	return c.guard.Validate(ErrApplyRouteCommandIsNotConstructed)
}

func (c ApplyRouteCommand) RoundID() kernel.UUID {
	return c.roundID
}

// OrderedIDs returns a copy of the requested order.
func (c ApplyRouteCommand) OrderedIDs() []string {
	return append([]string(nil), c.orderedIDs...)
}

func (c *ApplyRouteCommand) setRoundID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.roundID = id
	return nil
}

func (c *ApplyRouteCommand) setOrderedIDs(ids []string) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("ordered IDs")
	}
	c.orderedIDs = append([]string(nil), ids...)
	return nil
}
