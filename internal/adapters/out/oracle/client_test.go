package oracle_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"roundplanner/internal/adapters/out/oracle"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request() ports.OptimizationRequest {
	return ports.OptimizationRequest{Stops: []ports.OptimizationStop{
		{ID: "company-1", Label: "Company pickup", Lat: 40.1, Lng: -3.1, Kind: "company-pickup"},
		{ID: "stop-a", Label: "Delivery 1", Lat: 40.2, Lng: -3.2, Kind: "client-delivery"},
	}}
}

func newClient(t *testing.T, url string, cfg oracle.Config) (*oracle.Client, *metrics.Metrics) {
	t.Helper()
	cfg.BaseURL = url
	m := metrics.New()
	return oracle.NewClient(cfg, m, slog.New(slog.NewTextHandler(io.Discard, nil))), m
}

func TestClient_Optimize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/optimize", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body struct {
			Stops []struct {
				ID   string  `json:"id"`
				Lat  float64 `json:"lat"`
				Kind string  `json:"kind"`
			} `json:"stops"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Stops, 2)
		assert.Equal(t, "company-1", body.Stops[0].ID)
		assert.Equal(t, "client-delivery", body.Stops[1].Kind)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderedIds":["company-1","stop-a"],"estimatedTotalDistanceKm":12.5,"notes":"ok"}`))
	}))
	defer server.Close()

	client, m := newClient(t, server.URL, oracle.Config{APIKey: "secret"})

	resp, err := client.Optimize(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []string{"company-1", "stop-a"}, resp.OrderedIDs)
	require.NotNil(t, resp.EstimatedTotalDistanceKm)
	assert.InDelta(t, 12.5, *resp.EstimatedTotalDistanceKm, 1e-9)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "ok", *resp.Notes)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ExternalCalls.WithLabelValues("oracle", "ok")), 0)
}

func TestClient_Optimize_OptionalFieldsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderedIds":["stop-a","company-1"]}`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, oracle.Config{})

	resp, err := client.Optimize(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []string{"stop-a", "company-1"}, resp.OrderedIDs)
	assert.Nil(t, resp.EstimatedTotalDistanceKm)
	assert.Nil(t, resp.Notes)
}

func TestClient_Optimize_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, m := newClient(t, server.URL, oracle.Config{Timeout: 50 * time.Millisecond})

	_, err := client.Optimize(context.Background(), request())
	require.ErrorIs(t, err, ports.ErrOracleTimeout)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ExternalCalls.WithLabelValues("oracle", "timeout")), 0)
}

func TestClient_Optimize_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, oracle.Config{})

	_, err := client.Optimize(context.Background(), request())
	require.ErrorIs(t, err, ports.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_Optimize_UnusableAnswer(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing orderedIds", body: `{"notes":"no route"}`},
		{name: "malformed body", body: `{"orderedIds":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, m := newClient(t, server.URL, oracle.Config{FailureThreshold: 1, OpenTimeout: time.Minute})

			for range 2 {
				_, err := client.Optimize(context.Background(), request())
				require.ErrorIs(t, err, services.ErrInvalidOracleResponse)
				assert.NotErrorIs(t, err, ports.ErrProviderUnavailable)
			}

			assert.Equal(t, int32(2), calls.Load(), "unusable answers must not open the breaker")
			assert.InDelta(t, 2, testutil.ToFloat64(m.ExternalCalls.WithLabelValues("oracle", "invalid")), 0)
			assert.InDelta(t, 0, testutil.ToFloat64(m.CircuitBreakerState.WithLabelValues("oracle")), 0)
		})
	}
}

func TestClient_Optimize_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, m := newClient(t, server.URL, oracle.Config{FailureThreshold: 2, OpenTimeout: time.Minute})

	for range 2 {
		_, err := client.Optimize(context.Background(), request())
		require.ErrorIs(t, err, ports.ErrProviderUnavailable)
	}

	_, err := client.Optimize(context.Background(), request())
	require.ErrorIs(t, err, ports.ErrProviderUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the server")
	assert.InDelta(t, 1, testutil.ToFloat64(m.ExternalCalls.WithLabelValues("oracle", "rejected")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.CircuitBreakerState.WithLabelValues("oracle")), 0)
}
