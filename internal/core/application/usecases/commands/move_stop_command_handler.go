package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/core/domain/services"
)

// MoveStopResult reports whether the move changed the order. Boundary moves
// succeed with Applied set to false.
type MoveStopResult struct {
	Applied bool
}

// MoveStopCommandHandler swaps a stop with its neighbour.
//
// The swap is two index writes. If the second write fails, the first is
// written back to its original index before the error is returned, so the
// transaction never holds a half-swapped pair.
type MoveStopCommandHandler struct {
	uowFactory RoundStopsUoWFactory
	sequencer  services.StopSequencer
	logger     *slog.Logger
}

// NewMoveStopCommandHandler creates a handler for manual stop moves.
func NewMoveStopCommandHandler(uowFactory RoundStopsUoWFactory, logger *slog.Logger) MoveStopCommandHandler {
	return MoveStopCommandHandler{
		uowFactory: uowFactory,
		sequencer:  services.NewStopSequencer(),
		logger:     logger.With("component", "move-stop"),
	}
}

// Handle locks the round, plans the move and applies it.
func (h MoveStopCommandHandler) Handle(ctx context.Context, cmd MoveStopCommand) (MoveStopResult, error) {
	if err := cmd.Validate(); err != nil {
		return MoveStopResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MoveStopResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	roundRepo := uow.RoundRepository()
	stopRepo := uow.StopRepository()

	if _, err := roundRepo.GetForUpdate(ctx, cmd.RoundID()); err != nil {
		return MoveStopResult{}, err
	}

	stops, err := stopRepo.ListOrdered(ctx, cmd.RoundID())
	if err != nil {
		return MoveStopResult{}, err
	}

	plan, err := h.sequencer.Plan(stops, cmd.StopID(), cmd.Direction())
	if err != nil {
		return MoveStopResult{}, err
	}
	if plan.Noop {
		return MoveStopResult{Applied: false}, nil
	}

	originalIndex := plan.Moving.OrderIndex()

	if err = stopRepo.WriteOrder(ctx, cmd.RoundID(), plan.Moving.ID(), plan.MovingTo()); err != nil {
		return MoveStopResult{}, err
	}

	if err = stopRepo.WriteOrder(ctx, cmd.RoundID(), plan.Neighbour.ID(), plan.NeighbourTo()); err != nil {
		if restoreErr := stopRepo.WriteOrder(ctx, cmd.RoundID(), plan.Moving.ID(), originalIndex); restoreErr != nil {
			h.logger.ErrorContext(ctx, "failed to restore stop index after failed swap",
				"round_id", cmd.RoundID().String(),
				"stop_id", plan.Moving.ID().String(),
				"index", originalIndex,
				"error", restoreErr,
			)
			return MoveStopResult{}, errors.Join(err, fmt.Errorf("restore stop index: %w", restoreErr))
		}
		return MoveStopResult{}, err
	}

	after, err := stopRepo.ListOrdered(ctx, cmd.RoundID())
	if err != nil {
		return MoveStopResult{}, err
	}
	if err = stop.ValidateSequence(after); err != nil {
		return MoveStopResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MoveStopResult{}, err
	}

	return MoveStopResult{Applied: true}, nil
}
