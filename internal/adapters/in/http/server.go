package http

import (
	"context"
	"log/slog"
	"net/http"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateRoundHandler interface {
	Handle(ctx context.Context, cmd commands.CreateRoundCommand) error
}

type GetRoundStopsHandler interface {
	Handle(ctx context.Context, query queries.GetRoundStopsQuery) ([]queries.GetRoundStopsQueryResponse, error)
}

type MoveStopHandler interface {
	Handle(ctx context.Context, cmd commands.MoveStopCommand) (commands.MoveStopResult, error)
}

type SetRoundStatusHandler interface {
	Handle(ctx context.Context, cmd commands.SetRoundStatusCommand) (commands.SetRoundStatusResult, error)
}

type SuggestRouteHandler interface {
	Handle(ctx context.Context, query queries.SuggestRouteQuery) (queries.SuggestRouteQueryResponse, error)
}

type ApplyRouteHandler interface {
	Handle(ctx context.Context, cmd commands.ApplyRouteCommand) (commands.ApplyRouteResult, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateRound    CreateRoundHandler
	GetRoundStops  GetRoundStopsHandler
	MoveStop       MoveStopHandler
	SetRoundStatus SetRoundStatusHandler
	SuggestRoute   SuggestRouteHandler
	ApplyRoute     ApplyRouteHandler
}

// Server implements servers.ServerInterface on top of the application
// use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// CreateRound handles POST /api/v1/rounds.
func (s *Server) CreateRound(ctx echo.Context) error {
	var body servers.NewRound
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	courierID, err := optionalID(body.CourierId)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}
	companyID, err := optionalID(body.CompanyId)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}
	shipmentIDs := make([]kernel.UUID, 0, len(body.ShipmentIds))
	for _, raw := range body.ShipmentIds {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return s.fail(ctx, opDefault, idErr)
		}
		shipmentIDs = append(shipmentIDs, id)
	}

	roundID := kernel.NewUUID()
	cmd, err := commands.NewCreateRoundCommand(roundID, body.Date.Time, courierID, string(body.Kind), companyID, shipmentIDs)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	if err := s.handlers.CreateRound.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, opDefault, err)
	}

	return ctx.JSON(http.StatusCreated, servers.RoundCreated{Id: roundID.Bytes()})
}

// GetRoundStops handles GET /api/v1/rounds/{roundId}/stops.
func (s *Server) GetRoundStops(ctx echo.Context, roundId servers.RoundId) error {
	id, err := kernel.UUIDFromBytes(roundId[:])
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	query, err := queries.NewGetRoundStopsQuery(id)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	stops, err := s.handlers.GetRoundStops.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	response := make([]servers.Stop, len(stops))
	for i, st := range stops {
		response[i] = servers.Stop{
			Id:         st.ID.Bytes(),
			Ref:        st.Ref,
			OrderIndex: st.OrderIndex,
			Kind:       servers.StopKind(st.Kind.String()),
			Label:      st.Label,
		}
		if st.ShipmentID != nil {
			shipmentID := st.ShipmentID.Bytes()
			response[i].ShipmentId = &shipmentID
		}
		if st.Location != nil {
			lat, lng := st.Location.Lat(), st.Location.Lng()
			response[i].Lat = &lat
			response[i].Lng = &lng
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// MoveStop handles POST /api/v1/rounds/{roundId}/stops/{stopId}/move.
func (s *Server) MoveStop(ctx echo.Context, roundId servers.RoundId, stopId openapi_types.UUID) error {
	var body servers.MoveStopRequest
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	rID, err := kernel.UUIDFromBytes(roundId[:])
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}
	sID, err := kernel.UUIDFromBytes(stopId[:])
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	cmd, err := commands.NewMoveStopCommand(rID, sID, string(body.Direction))
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	result, err := s.handlers.MoveStop.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	return ctx.JSON(http.StatusOK, servers.MoveStopResult{Applied: result.Applied})
}

// SetRoundStatus handles PUT /api/v1/rounds/{roundId}/status.
func (s *Server) SetRoundStatus(ctx echo.Context, roundId servers.RoundId) error {
	var body servers.SetRoundStatusRequest
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	id, err := kernel.UUIDFromBytes(roundId[:])
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	cmd, err := commands.NewSetRoundStatusCommand(id, body.Status)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	result, err := s.handlers.SetRoundStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, opDefault, err)
	}

	response := servers.SetRoundStatusResult{
		RoundUpdated:   result.RoundUpdated,
		CascadeApplied: result.CascadeApplied,
	}
	if result.Warning != "" {
		response.Warning = &result.Warning
	}

	return ctx.JSON(http.StatusOK, response)
}

// SuggestRoute handles POST /api/v1/rounds/{roundId}/route/suggestion.
func (s *Server) SuggestRoute(ctx echo.Context, roundId servers.RoundId) error {
	id, err := kernel.UUIDFromBytes(roundId[:])
	if err != nil {
		return s.fail(ctx, opSuggest, err)
	}

	query, err := queries.NewSuggestRouteQuery(id)
	if err != nil {
		return s.fail(ctx, opSuggest, err)
	}

	suggestion, err := s.handlers.SuggestRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, opSuggest, err)
	}

	return ctx.JSON(http.StatusOK, servers.RouteSuggestion{
		OrderedIds:               suggestion.OrderedIDs,
		EstimatedTotalDistanceKm: suggestion.EstimatedTotalDistanceKm,
		Notes:                    suggestion.Notes,
		CurrentDistanceKm:        suggestion.CurrentDistanceKm,
		CandidateDistanceKm:      suggestion.CandidateDistanceKm,
	})
}

// ApplyRoute handles PUT /api/v1/rounds/{roundId}/route.
func (s *Server) ApplyRoute(ctx echo.Context, roundId servers.RoundId) error {
	var body servers.ApplyRouteRequest
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	id, err := kernel.UUIDFromBytes(roundId[:])
	if err != nil {
		return s.fail(ctx, opApply, err)
	}

	cmd, err := commands.NewApplyRouteCommand(id, body.OrderedIds)
	if err != nil {
		return s.fail(ctx, opApply, err)
	}

	result, err := s.handlers.ApplyRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, opApply, err)
	}

	return ctx.JSON(http.StatusOK, servers.ApplyRouteResult{Applied: result.Applied})
}

// bind decodes and validates the request body. The returned *echo.HTTPError
// is rendered by the router's error handler.
func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func optionalID(raw *openapi_types.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent optional id
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
