// Package distance estimates route lengths for comparing the current stop
// order with a suggested one.
package distance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/errs"
	"roundplanner/internal/pkg/metrics"
	"roundplanner/internal/pkg/restylog"

	"github.com/go-resty/resty/v2"
)

const (
	distancePath = "/distance"
	providerName = "distance"

	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 5 * time.Second
)

// ErrTooFewWaypoints is returned for routes with fewer than two points.
var ErrTooFewWaypoints = errs.NewValueIsInvalidError("waypoints")

type waypointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type requestDTO struct {
	OrderedWaypoints []waypointDTO `json:"orderedWaypoints"`
}

type responseDTO struct {
	TotalDistanceKm *float64 `json:"totalDistanceKm"`
}

// Client implements ports.DistanceEstimator against the routing provider.
type Client struct {
	http    *resty.Client
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewClient creates a provider client. m may be nil.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(1).
			SetRetryWaitTime(100 * time.Millisecond).
			SetHeader("Accept", "application/json").
			SetLogger(restylog.New(logger.With("component", "distance-provider"))),
		timeout: timeout,
		metrics: m,
	}
}

// EstimateDistance returns the provider's length of the route through
// waypoints, in order.
func (c *Client) EstimateDistance(ctx context.Context, waypoints []kernel.Location) (float64, error) {
	if len(waypoints) < 2 {
		return 0, ErrTooFewWaypoints
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := requestDTO{OrderedWaypoints: make([]waypointDTO, 0, len(waypoints))}
	for _, w := range waypoints {
		body.OrderedWaypoints = append(body.OrderedWaypoints, waypointDTO{Lat: w.Lat(), Lng: w.Lng()})
	}

	var out responseDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(distancePath)
	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		c.metrics.ObserveExternalCall(providerName, "timeout")
		return 0, fmt.Errorf("%w: distance provider timed out: %w", ports.ErrProviderUnavailable, err)
	case err != nil:
		c.metrics.ObserveExternalCall(providerName, "unavailable")
		return 0, fmt.Errorf("%w: %w", ports.ErrProviderUnavailable, err)
	case resp.IsError():
		c.metrics.ObserveExternalCall(providerName, "unavailable")
		return 0, fmt.Errorf("%w: distance provider answered %d", ports.ErrProviderUnavailable, resp.StatusCode())
	case out.TotalDistanceKm == nil || *out.TotalDistanceKm < 0:
		c.metrics.ObserveExternalCall(providerName, "rejected")
		return 0, fmt.Errorf("%w: distance provider returned no usable totalDistanceKm", ports.ErrProviderUnavailable)
	}

	c.metrics.ObserveExternalCall(providerName, "ok")
	return *out.TotalDistanceKm, nil
}
