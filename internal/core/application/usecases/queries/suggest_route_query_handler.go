package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"
)

// ErrInsufficientStops is returned when fewer than two stops of a round have
// coordinates. The oracle is not called.
var ErrInsufficientStops = errors.New("insufficient stops")

// SuggestRouteQueryHandler builds the oracle request from a round's
// geolocated stops, calls the oracle and validates its answer.
//
// Stops without coordinates are left out of the request and put back into
// the candidate afterwards, so it always names every stop of the round: a
// skipped pickup goes first, skipped deliveries go last in stored order. The
// pickup, when present, is always first in the returned order.
type SuggestRouteQueryHandler struct {
	rounds      ports.RoundRepository
	stops       ports.StopRepository
	shipments   ports.ShipmentDirectory
	companies   ports.CompanyDirectory
	optimizer   ports.RouteOptimizer
	distance    ports.DistanceEstimator
	permutation services.RoutePermutation
	logger      *slog.Logger
}

// NewSuggestRouteQueryHandler creates the handler. distance may be nil, in
// which case no distances are estimated.
func NewSuggestRouteQueryHandler(
	rounds ports.RoundRepository,
	stops ports.StopRepository,
	shipments ports.ShipmentDirectory,
	companies ports.CompanyDirectory,
	optimizer ports.RouteOptimizer,
	distance ports.DistanceEstimator,
	logger *slog.Logger,
) SuggestRouteQueryHandler {
	return SuggestRouteQueryHandler{
		rounds:      rounds,
		stops:       stops,
		shipments:   shipments,
		companies:   companies,
		optimizer:   optimizer,
		distance:    distance,
		permutation: services.NewRoutePermutation(),
		logger:      logger.With("component", "route-suggestion"),
	}
}

// geoStop is a stop that made it into the oracle request.
type geoStop struct {
	stop     *stop.Stop
	ref      string
	location kernel.Location
}

// Handle returns a candidate order for the round.
//
// Returns:
//   - errs.ObjectNotFoundError if the round does not exist
//   - ErrInsufficientStops if fewer than two stops have coordinates
//   - ports.ErrOracleTimeout or ports.ErrProviderUnavailable from the oracle
//   - an error wrapping services.ErrInvalidOracleResponse if the oracle's order
//     is not a permutation of the request
func (h SuggestRouteQueryHandler) Handle(ctx context.Context, query SuggestRouteQuery) (SuggestRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SuggestRouteQueryResponse{}, err
	}

	r, err := h.rounds.Get(ctx, query.RoundID())
	if err != nil {
		return SuggestRouteQueryResponse{}, err
	}

	stops, err := h.stops.ListOrdered(ctx, query.RoundID())
	if err != nil {
		return SuggestRouteQueryResponse{}, err
	}

	current, err := h.geolocate(ctx, r, stops)
	if err != nil {
		return SuggestRouteQueryResponse{}, err
	}
	if len(current) < 2 {
		return SuggestRouteQueryResponse{}, fmt.Errorf("%w: %d of %d stops have coordinates",
			ErrInsufficientStops, len(current), len(stops))
	}

	request := ports.OptimizationRequest{Stops: make([]ports.OptimizationStop, 0, len(current))}
	requested := make([]string, 0, len(current))
	deliveries := 0
	for _, g := range current {
		if !g.stop.IsPickup() {
			deliveries++
		}
		request.Stops = append(request.Stops, ports.OptimizationStop{
			ID:    g.ref,
			Label: label(g.stop, deliveries),
			Lat:   g.location.Lat(),
			Lng:   g.location.Lng(),
			Kind:  g.stop.Kind().String(),
		})
		requested = append(requested, g.ref)
	}

	response, err := h.optimizer.Optimize(ctx, request)
	if err != nil {
		return SuggestRouteQueryResponse{}, err
	}

	if err = h.permutation.Check(requested, response.OrderedIDs); err != nil {
		h.logger.WarnContext(ctx, "oracle returned an unusable order",
			"round_id", query.RoundID().String(),
			"error", err,
		)
		return SuggestRouteQueryResponse{}, err
	}

	ordered := response.OrderedIDs
	if len(stops) > 0 && stops[0].IsPickup() {
		ordered = h.permutation.PinFirst(ordered, services.RefOf(r, stops[0]).String())
	}

	result := SuggestRouteQueryResponse{
		OrderedIDs:               withSkipped(r, stops, ordered),
		EstimatedTotalDistanceKm: response.EstimatedTotalDistanceKm,
		Notes:                    response.Notes,
	}

	if h.distance != nil {
		result.CurrentDistanceKm = h.estimate(ctx, query.RoundID(), "current", current)
		result.CandidateDistanceKm = h.estimate(ctx, query.RoundID(), "candidate", reorder(current, ordered))
	}

	return result, nil
}

// geolocate returns the stops that have coordinates, in stored order.
func (h SuggestRouteQueryHandler) geolocate(ctx context.Context, r *round.Round, stops []*stop.Stop) ([]geoStop, error) {
	out := make([]geoStop, 0, len(stops))

	for _, s := range stops {
		var (
			loc *kernel.Location
			err error
		)

		switch {
		case s.IsPickup() && r.Company() != nil:
			loc, err = h.companies.GetAddress(ctx, *r.Company())
		case s.Shipment() != nil:
			loc, err = h.shipments.GetDestination(ctx, *s.Shipment())
		}
		if err != nil {
			return nil, err
		}

		if loc == nil {
			h.logger.DebugContext(ctx, "stop has no coordinates, skipped",
				"stop_id", s.ID().String(),
				"kind", s.Kind().String(),
			)
			continue
		}

		out = append(out, geoStop{stop: s, ref: services.RefOf(r, s).String(), location: *loc})
	}

	return out, nil
}

// estimate returns nil on failure; distances are informational only.
func (h SuggestRouteQueryHandler) estimate(ctx context.Context, roundID kernel.UUID, which string, route []geoStop) *float64 {
	waypoints := make([]kernel.Location, 0, len(route))
	for _, g := range route {
		waypoints = append(waypoints, g.location)
	}

	km, err := h.distance.EstimateDistance(ctx, waypoints)
	if err != nil {
		h.logger.WarnContext(ctx, "distance estimate failed",
			"round_id", roundID.String(),
			"route", which,
			"error", err,
		)
		return nil
	}
	return &km
}

func reorder(stops []geoStop, ordered []string) []geoStop {
	byRef := make(map[string]geoStop, len(stops))
	for _, g := range stops {
		byRef[g.ref] = g
	}

	out := make([]geoStop, 0, len(ordered))
	for _, ref := range ordered {
		out = append(out, byRef[ref])
	}
	return out
}

// withSkipped extends ordered to every stop of the round.
func withSkipped(r *round.Round, stops []*stop.Stop, ordered []string) []string {
	named := make(map[string]bool, len(ordered))
	for _, ref := range ordered {
		named[ref] = true
	}

	head := make([]string, 0, len(stops))
	var tail []string
	for _, s := range stops {
		ref := services.RefOf(r, s).String()
		switch {
		case named[ref]:
		case s.IsPickup():
			head = append(head, ref)
		default:
			tail = append(tail, ref)
		}
	}

	head = append(head, ordered...)
	return append(head, tail...)
}

// label names a stop for the oracle. Deliveries are numbered from 1 in
// stored order, not counting the pickup.
func label(s *stop.Stop, delivery int) string {
	if s.IsPickup() {
		return "Company pickup"
	}
	return fmt.Sprintf("Delivery %d", delivery)
}
