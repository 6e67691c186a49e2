package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMoveStopCommandHandler_Handle_SwapsWithNeighbour(t *testing.T) {
	ctx := t.Context()
	fx := newCompanyRound(t, 2)
	pickup, a, b := fx.stops[0], fx.stops[1], fx.stops[2]
	roundID := fx.round.ID()

	cmd, err := commands.NewMoveStopCommand(roundID, b.ID(), "up")
	require.NoError(t, err)

	roundRepo := new(MockRoundRepository)
	stopRepo := new(MockStopRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RoundRepository").Return(roundRepo).Once(),
		uow.On("StopRepository").Return(stopRepo).Once(),
		roundRepo.On("GetForUpdate", ctx, roundID).Return(fx.round, nil).Once(),
		stopRepo.On("ListOrdered", ctx, roundID).Return(fx.stops, nil).Once(),
		stopRepo.On("WriteOrder", ctx, roundID, b.ID(), 1).Return(nil).Once(),
		stopRepo.On("WriteOrder", ctx, roundID, a.ID(), 2).Return(nil).Once(),
		stopRepo.On("ListOrdered", ctx, roundID).Return(reindexed(t, pickup, b, a), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRoundStopsUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMoveStopCommandHandler(factory, slog.Default())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Applied)

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	roundRepo.AssertExpectations(t)
	stopRepo.AssertExpectations(t)
}

func TestMoveStopCommandHandler_Handle_BoundaryIsNoop(t *testing.T) {
	fx := newCompanyRound(t, 2)

	tests := []struct {
		name      string
		stopIdx   int
		direction string
	}{
		{"pickup up", 0, "up"},
		{"first delivery above pickup", 1, "up"},
		{"last stop down", 2, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			roundID := fx.round.ID()

			cmd, err := commands.NewMoveStopCommand(roundID, fx.stops[tt.stopIdx].ID(), tt.direction)
			require.NoError(t, err)

			roundRepo := new(MockRoundRepository)
			stopRepo := new(MockStopRepository)
			uow := new(MockUoW)

			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("RoundRepository").Return(roundRepo).Once()
			uow.On("StopRepository").Return(stopRepo).Once()
			roundRepo.On("GetForUpdate", ctx, roundID).Return(fx.round, nil).Once()
			stopRepo.On("ListOrdered", ctx, roundID).Return(fx.stops, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockRoundStopsUoWFactory)
			factory.On("Create").Return(uow).Once()

			result, err := commands.NewMoveStopCommandHandler(factory, slog.Default()).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.False(t, result.Applied)
			stopRepo.AssertNotCalled(t, "WriteOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			uow.AssertExpectations(t)
		})
	}
}

func TestMoveStopCommandHandler_Handle_RestoresFirstWriteWhenSecondFails(t *testing.T) {
	ctx := t.Context()
	fx := newCompanyRound(t, 2)
	a, b := fx.stops[1], fx.stops[2]
	roundID := fx.round.ID()
	writeErr := errors.New("write failed")

	cmd, err := commands.NewMoveStopCommand(roundID, a.ID(), "down")
	require.NoError(t, err)

	roundRepo := new(MockRoundRepository)
	stopRepo := new(MockStopRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RoundRepository").Return(roundRepo).Once(),
		uow.On("StopRepository").Return(stopRepo).Once(),
		roundRepo.On("GetForUpdate", ctx, roundID).Return(fx.round, nil).Once(),
		stopRepo.On("ListOrdered", ctx, roundID).Return(fx.stops, nil).Once(),
		stopRepo.On("WriteOrder", ctx, roundID, a.ID(), 2).Return(nil).Once(),
		stopRepo.On("WriteOrder", ctx, roundID, b.ID(), 1).Return(writeErr).Once(),
		stopRepo.On("WriteOrder", ctx, roundID, a.ID(), 1).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRoundStopsUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewMoveStopCommandHandler(factory, slog.Default()).Handle(ctx, cmd)

	require.ErrorIs(t, err, writeErr)
	assert.False(t, result.Applied)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	stopRepo.AssertExpectations(t)
}

func TestMoveStopCommandHandler_Handle_ReportsBothErrorsWhenRestoreFails(t *testing.T) {
	ctx := t.Context()
	fx := newCompanyRound(t, 2)
	a, b := fx.stops[1], fx.stops[2]
	roundID := fx.round.ID()
	writeErr := errors.New("write failed")
	restoreErr := errors.New("restore failed")

	cmd, err := commands.NewMoveStopCommand(roundID, a.ID(), "down")
	require.NoError(t, err)

	roundRepo := new(MockRoundRepository)
	stopRepo := new(MockStopRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RoundRepository").Return(roundRepo).Once()
	uow.On("StopRepository").Return(stopRepo).Once()
	roundRepo.On("GetForUpdate", ctx, roundID).Return(fx.round, nil).Once()
	stopRepo.On("ListOrdered", ctx, roundID).Return(fx.stops, nil).Once()
	stopRepo.On("WriteOrder", ctx, roundID, a.ID(), 2).Return(nil).Once()
	stopRepo.On("WriteOrder", ctx, roundID, b.ID(), 1).Return(writeErr).Once()
	stopRepo.On("WriteOrder", ctx, roundID, a.ID(), 1).Return(restoreErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRoundStopsUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewMoveStopCommandHandler(factory, slog.Default()).Handle(ctx, cmd)

	require.ErrorIs(t, err, writeErr)
	require.ErrorIs(t, err, restoreErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMoveStopCommandHandler_Handle_CorruptOrderWritesNothing(t *testing.T) {
	ctx := t.Context()
	fx := newCompanyRound(t, 2)
	roundID := fx.round.ID()

	cmd, err := commands.NewMoveStopCommand(roundID, fx.stops[2].ID(), "up")
	require.NoError(t, err)

	// index 2 is missing, so the last delivery has no neighbour above it
	stopsWithGap := withIndices(t, fx.stops, 0, 1, 3)

	roundRepo := new(MockRoundRepository)
	stopRepo := new(MockStopRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RoundRepository").Return(roundRepo).Once()
	uow.On("StopRepository").Return(stopRepo).Once()
	roundRepo.On("GetForUpdate", ctx, roundID).Return(fx.round, nil).Once()
	stopRepo.On("ListOrdered", ctx, roundID).Return(stopsWithGap, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRoundStopsUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewMoveStopCommandHandler(factory, slog.Default()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInconsistentState)
	stopRepo.AssertNotCalled(t, "WriteOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveStopCommandHandler_Handle_RoundNotFound(t *testing.T) {
	ctx := t.Context()
	fx := newCompanyRound(t, 1)
	roundID := fx.round.ID()
	notFound := errs.NewObjectNotFoundError("round", roundID)

	cmd, err := commands.NewMoveStopCommand(roundID, fx.stops[1].ID(), "up")
	require.NoError(t, err)

	roundRepo := new(MockRoundRepository)
	stopRepo := new(MockStopRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RoundRepository").Return(roundRepo).Once()
	uow.On("StopRepository").Return(stopRepo).Once()
	roundRepo.On("GetForUpdate", ctx, roundID).Return(nil, notFound).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRoundStopsUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewMoveStopCommandHandler(factory, slog.Default()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	stopRepo.AssertNotCalled(t, "ListOrdered", mock.Anything, mock.Anything)
}
