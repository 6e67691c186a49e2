package commands

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/pkg/guard"
)

var ErrSetRoundStatusCommandIsNotConstructed = errors.New(
	"SetRoundStatusCommand must be created via NewSetRoundStatusCommand constructor",
)

// SetRoundStatusCommand sets a round's status and cascades it to the
// round's shipments.
//
// Example:
//
//	cmd, err := NewSetRoundStatusCommand(roundID, "completed")
//	if errors.Is(err, round.ErrInvalidStatus) {
//	    // reject the request
//	}
type SetRoundStatusCommand struct { //nolint:recvcheck //using for validation
	roundID kernel.UUID
	status  round.Status

	guard guard.ConstructorGuard
}

// NewSetRoundStatusCommand parses status; unknown values wrap round.ErrInvalidStatus.
func NewSetRoundStatusCommand(roundID kernel.UUID, status string) (SetRoundStatusCommand, error) {
	cmd := SetRoundStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRoundID(roundID),
		cmd.setStatus(status),
	); err != nil {
		return SetRoundStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetRoundStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetRoundStatusCommandIsNotConstructed)
}

func (c SetRoundStatusCommand) RoundID() kernel.UUID {
	return c.roundID
}

func (c SetRoundStatusCommand) Status() round.Status {
	return c.status
}

func (c *SetRoundStatusCommand) setRoundID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.roundID = id
	return nil
}

func (c *SetRoundStatusCommand) setStatus(status string) error {
	s, err := round.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}
