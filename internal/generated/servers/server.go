package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create a round with its stops
	// (POST /api/v1/rounds)
	CreateRound(ctx echo.Context) error
	// List the stops of a round in visiting order
	// (GET /api/v1/rounds/{roundId}/stops)
	GetRoundStops(ctx echo.Context, roundId RoundId) error
	// Swap a stop with its neighbour
	// (POST /api/v1/rounds/{roundId}/stops/{stopId}/move)
	MoveStop(ctx echo.Context, roundId RoundId, stopId openapi_types.UUID) error
	// Change the round status and cascade it to its shipments
	// (PUT /api/v1/rounds/{roundId}/status)
	SetRoundStatus(ctx echo.Context, roundId RoundId) error
	// Ask the route oracle for a candidate stop order
	// (POST /api/v1/rounds/{roundId}/route/suggestion)
	SuggestRoute(ctx echo.Context, roundId RoundId) error
	// Commit a full stop order atomically
	// (PUT /api/v1/rounds/{roundId}/route)
	ApplyRoute(ctx echo.Context, roundId RoundId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateRound converts echo context to params.
func (w *ServerInterfaceWrapper) CreateRound(ctx echo.Context) error {
	return w.Handler.CreateRound(ctx)
}

// GetRoundStops converts echo context to params.
func (w *ServerInterfaceWrapper) GetRoundStops(ctx echo.Context) error {
	roundId, err := bindUUID(ctx, "roundId")
	if err != nil {
		return err
	}
	return w.Handler.GetRoundStops(ctx, roundId)
}

// MoveStop converts echo context to params.
func (w *ServerInterfaceWrapper) MoveStop(ctx echo.Context) error {
	roundId, err := bindUUID(ctx, "roundId")
	if err != nil {
		return err
	}
	stopId, err := bindUUID(ctx, "stopId")
	if err != nil {
		return err
	}
	return w.Handler.MoveStop(ctx, roundId, stopId)
}

// SetRoundStatus converts echo context to params.
func (w *ServerInterfaceWrapper) SetRoundStatus(ctx echo.Context) error {
	roundId, err := bindUUID(ctx, "roundId")
	if err != nil {
		return err
	}
	return w.Handler.SetRoundStatus(ctx, roundId)
}

// SuggestRoute converts echo context to params.
func (w *ServerInterfaceWrapper) SuggestRoute(ctx echo.Context) error {
	roundId, err := bindUUID(ctx, "roundId")
	if err != nil {
		return err
	}
	return w.Handler.SuggestRoute(ctx, roundId)
}

// ApplyRoute converts echo context to params.
func (w *ServerInterfaceWrapper) ApplyRoute(ctx echo.Context) error {
	roundId, err := bindUUID(ctx, "roundId")
	if err != nil {
		return err
	}
	return w.Handler.ApplyRoute(ctx, roundId)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group the handlers are
// registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends
// baseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/rounds", wrapper.CreateRound)
	router.GET(baseURL+"/api/v1/rounds/:roundId/stops", wrapper.GetRoundStops)
	router.POST(baseURL+"/api/v1/rounds/:roundId/stops/:stopId/move", wrapper.MoveStop)
	router.PUT(baseURL+"/api/v1/rounds/:roundId/status", wrapper.SetRoundStatus)
	router.POST(baseURL+"/api/v1/rounds/:roundId/route/suggestion", wrapper.SuggestRoute)
	router.PUT(baseURL+"/api/v1/rounds/:roundId/route", wrapper.ApplyRoute)
}
