package http

import (
	"errors"
	"net/http"

	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/generated/servers"
	"roundplanner/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// operation selects the status for errors whose meaning depends on the
// endpoint.
type operation int

const (
	opDefault operation = iota
	opApply
	opSuggest
)

// statusFor maps an application error to its HTTP status.
func statusFor(err error, op operation) int {
	switch {
	case errors.Is(err, round.ErrStatusTransitionNotAllowed):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInconsistentState):
		return http.StatusInternalServerError
	case errors.Is(err, queries.ErrInsufficientStops):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidOracleResponse):
		// On suggest the oracle is at fault; on apply the client sent the
		// bad list.
		if op == opSuggest {
			return http.StatusBadGateway
		}
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidRoute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrOracleTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ports.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Internal errors are logged and their
// text is not sent to the client.
func (s *Server) fail(ctx echo.Context, op operation, err error) error {
	status := statusFor(err, op)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}

// errorHandler renders errors returned to echo, for example from parameter
// binding or request validation, in the servers.Error format.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(status)
		return
	}
	_ = ctx.JSON(status, servers.Error{Code: status, Message: message})
}
