package commands

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/pkg/guard"
)

var ErrMoveStopCommandIsNotConstructed = errors.New(
	"MoveStopCommand must be created via NewMoveStopCommand constructor",
)

// MoveStopCommand moves one stop of a round a single position up or down.
//
// Example:
//
//	cmd, err := NewMoveStopCommand(roundID, stopID, "up")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type MoveStopCommand struct { //nolint:recvcheck //using for validation
	roundID   kernel.UUID
	stopID    kernel.UUID
	direction services.Direction

	guard guard.ConstructorGuard
}

// NewMoveStopCommand validates the identifiers and parses direction ("up" or "down").
func NewMoveStopCommand(roundID, stopID kernel.UUID, direction string) (MoveStopCommand, error) {
	cmd := MoveStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRoundID(roundID),
		cmd.setStopID(stopID),
		cmd.setDirection(direction),
	); err != nil {
		return MoveStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveStopCommand) Validate() error {
	return c.guard.Validate(ErrMoveStopCommandIsNotConstructed)
}

func (c MoveStopCommand) RoundID() kernel.UUID {
	return c.roundID
}

func (c MoveStopCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c MoveStopCommand) Direction() services.Direction {
	return c.direction
}

func (c *MoveStopCommand) setRoundID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.roundID = id
	return nil
}

func (c *MoveStopCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.stopID = id
	return nil
}

func (c *MoveStopCommand) setDirection(direction string) error {
	d, err := services.ParseDirection(direction)
	if err != nil {
		return err
	}
	c.direction = d
	return nil
}
