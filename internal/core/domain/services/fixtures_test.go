package services_test

import (
	"testing"
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/model/stop"

	"github.com/stretchr/testify/require"
)

// companyRound builds a company trip with a pickup at 0 followed by n deliveries.
func companyRound(t *testing.T, n int) (*round.Round, []*stop.Stop) {
	t.Helper()

	company := kernel.NewUUID()
	r, err := round.NewRound(kernel.NewUUID(), time.Now(), nil, round.CompanyTrip, &company)
	require.NoError(t, err)

	p, err := stop.NewPickup(kernel.NewUUID(), r.ID(), 0)
	require.NoError(t, err)

	stops := []*stop.Stop{p}
	for i := 1; i <= n; i++ {
		d, err := stop.NewDelivery(kernel.NewUUID(), r.ID(), i, kernel.NewUUID())
		require.NoError(t, err)
		stops = append(stops, d)
	}
	return r, stops
}

func individualRound(t *testing.T, n int) (*round.Round, []*stop.Stop) {
	t.Helper()

	r, err := round.NewRound(kernel.NewUUID(), time.Now(), nil, round.Individual, nil)
	require.NoError(t, err)

	var stops []*stop.Stop
	for i := 0; i < n; i++ {
		d, err := stop.NewDelivery(kernel.NewUUID(), r.ID(), i, kernel.NewUUID())
		require.NoError(t, err)
		stops = append(stops, d)
	}
	return r, stops
}
