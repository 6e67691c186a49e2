// Package oracle calls the external route-optimization service.
//
// The oracle receives the geolocated stops of a round and answers with a
// visiting order of their ids. The answer is returned as is; checking that
// it is a permutation of the request is the caller's job.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/metrics"
	"roundplanner/internal/pkg/restylog"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const (
	optimizePath = "/optimize"
	providerName = "oracle"

	// DefaultTimeout bounds a single oracle call.
	DefaultTimeout = 10 * time.Second
)

// Config configures the oracle client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Consecutive failed calls that open the breaker, and how long it stays
	// open before letting a probe through.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

type stopDTO struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Kind  string  `json:"kind"`
}

type requestDTO struct {
	Stops []stopDTO `json:"stops"`
}

type responseDTO struct {
	OrderedIDs               []string `json:"orderedIds"`
	EstimatedTotalDistanceKm *float64 `json:"estimatedTotalDistanceKm,omitempty"`
	Notes                    *string  `json:"notes,omitempty"`
}

// Client implements ports.RouteOptimizer over HTTP.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewClient creates an oracle client. m may be nil.
func NewClient(cfg Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	logger = logger.With("component", "route-oracle")

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(restylog.New(logger))
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
			m.SetCircuitBreakerState(name, int(to))
		},
	})

	return &Client{
		http:    httpClient,
		breaker: breaker,
		timeout: cfg.Timeout,
		metrics: m,
		logger:  logger,
	}
}

// Optimize posts the stops and returns the oracle's order.
// Deadline overruns are reported as ports.ErrOracleTimeout, other transport
// failures and an open breaker as ports.ErrProviderUnavailable. A 2xx answer
// that cannot be read or has no orderedIds wraps
// services.ErrInvalidOracleResponse and does not count against the breaker.
func (c *Client) Optimize(ctx context.Context, req ports.OptimizationRequest) (ports.OptimizationResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := requestDTO{Stops: make([]stopDTO, 0, len(req.Stops))}
	for _, s := range req.Stops {
		body.Stops = append(body.Stops, stopDTO(s))
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.post(ctx, body)
	})
	if err != nil {
		err = c.classify(ctx, err)
		c.logger.Warn("route oracle call failed", "stops", len(body.Stops), "error", err)
		return ports.OptimizationResponse{}, err
	}

	raw, _ := result.([]byte)
	out, err := decode(raw)
	if err != nil {
		c.metrics.ObserveExternalCall(providerName, "invalid")
		c.logger.Warn("route oracle answer rejected", "stops", len(body.Stops), "error", err)
		return ports.OptimizationResponse{}, err
	}

	c.metrics.ObserveExternalCall(providerName, "ok")

	return ports.OptimizationResponse{
		OrderedIDs:               out.OrderedIDs,
		EstimatedTotalDistanceKm: out.EstimatedTotalDistanceKm,
		Notes:                    out.Notes,
	}, nil
}

// errStatus marks a non-2xx answer so classify can tell it from transport
// errors.
type errStatus struct {
	code int
}

func (e errStatus) Error() string {
	return fmt.Sprintf("oracle answered %d %s", e.code, http.StatusText(e.code))
}

func (c *Client) post(ctx context.Context, body requestDTO) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(optimizePath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errStatus{code: resp.StatusCode()}
	}
	return resp.Body(), nil
}

func decode(raw []byte) (*responseDTO, error) {
	var out responseDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: unreadable body: %w", services.ErrInvalidOracleResponse, err)
	}
	if out.OrderedIDs == nil {
		return nil, fmt.Errorf("%w: orderedIds missing", services.ErrInvalidOracleResponse)
	}
	return &out, nil
}

func (c *Client) classify(ctx context.Context, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.metrics.ObserveExternalCall(providerName, "rejected")
		return fmt.Errorf("%w: %w", ports.ErrProviderUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		c.metrics.ObserveExternalCall(providerName, "timeout")
		return fmt.Errorf("%w after %s: %w", ports.ErrOracleTimeout, c.timeout, err)
	default:
		c.metrics.ObserveExternalCall(providerName, "unavailable")
		return fmt.Errorf("%w: %w", ports.ErrProviderUnavailable, err)
	}
}
