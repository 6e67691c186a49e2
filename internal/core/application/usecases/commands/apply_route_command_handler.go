package commands

import (
	"context"

	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/core/domain/services"
)

// ApplyRouteResult reports that the new order was committed.
type ApplyRouteResult struct {
	Applied bool
}

// ApplyRouteCommandHandler commits a full stop order in one transaction.
// Either every index is rewritten or the previous order stays untouched.
type ApplyRouteCommandHandler struct {
	uowFactory RoundStopsUoWFactory
	reconciler services.RouteReconciler
}

// NewApplyRouteCommandHandler creates a handler for route application.
func NewApplyRouteCommandHandler(uowFactory RoundStopsUoWFactory) ApplyRouteCommandHandler {
	return ApplyRouteCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewRouteReconciler(),
	}
}

// Handle locks the round, reconciles the requested order against its stops
// and writes every changed index.
func (h ApplyRouteCommandHandler) Handle(ctx context.Context, cmd ApplyRouteCommand) (ApplyRouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyRouteResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApplyRouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	roundRepo := uow.RoundRepository()
	stopRepo := uow.StopRepository()

	r, err := roundRepo.GetForUpdate(ctx, cmd.RoundID())
	if err != nil {
		return ApplyRouteResult{}, err
	}

	stops, err := stopRepo.ListOrdered(ctx, cmd.RoundID())
	if err != nil {
		return ApplyRouteResult{}, err
	}

	assignments, err := h.reconciler.Reconcile(r, stops, cmd.OrderedIDs())
	if err != nil {
		return ApplyRouteResult{}, err
	}

	for _, a := range assignments {
		if a.Stop.OrderIndex() == a.NewIndex {
			continue
		}
		if err = stopRepo.WriteOrder(ctx, cmd.RoundID(), a.Stop.ID(), a.NewIndex); err != nil {
			return ApplyRouteResult{}, err
		}
	}

	after, err := stopRepo.ListOrdered(ctx, cmd.RoundID())
	if err != nil {
		return ApplyRouteResult{}, err
	}
	if err = stop.ValidateSequence(after); err != nil {
		return ApplyRouteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ApplyRouteResult{}, err
	}

	return ApplyRouteResult{Applied: true}, nil
}
