// Package http exposes the round planner over HTTP with echo.
//
// Routes follow the embedded OpenAPI document of the servers package;
// requests are validated against it before they reach a handler. Errors are
// written as servers.Error with the status chosen by statusFor.
package http

import (
	"log/slog"
	"net/http"

	"roundplanner/internal/generated/servers"
	"roundplanner/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance with middleware, the operational
// endpoints and the API routes.
func NewRouter(server *Server, m *metrics.Metrics, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := openAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.With("component", "http-access")))
	e.Use(metricsMiddleware(m))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", servers.RawSpec())
	})
	e.GET("/docs/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("", validate)
	servers.RegisterHandlers(api, server)

	return e, nil
}
