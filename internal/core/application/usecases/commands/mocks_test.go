package commands_test

import (
	"context"
	"testing"
	"time"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/model/shipment"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoundRepository struct{ mock.Mock }

func (m *MockRoundRepository) Add(ctx context.Context, r *round.Round) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoundRepository) Update(ctx context.Context, r *round.Round) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoundRepository) Get(ctx context.Context, id kernel.UUID) (*round.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*round.Round), args.Error(1)
}

func (m *MockRoundRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*round.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*round.Round), args.Error(1)
}

type MockStopRepository struct{ mock.Mock }

func (m *MockStopRepository) ListOrdered(ctx context.Context, roundID kernel.UUID) ([]*stop.Stop, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stop.Stop), args.Error(1)
}

func (m *MockStopRepository) WriteOrder(ctx context.Context, roundID, stopID kernel.UUID, newIndex int) error {
	args := m.Called(ctx, roundID, stopID, newIndex)
	return args.Error(0)
}

func (m *MockStopRepository) AddBatch(ctx context.Context, stops []*stop.Stop) error {
	args := m.Called(ctx, stops)
	return args.Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) AttachToRound(ctx context.Context, roundID kernel.UUID, ids []kernel.UUID) error {
	args := m.Called(ctx, roundID, ids)
	return args.Error(0)
}

type MockShipmentDirectory struct{ mock.Mock }

func (m *MockShipmentDirectory) GetDestination(ctx context.Context, id kernel.UUID) (*kernel.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Location), args.Error(1)
}

func (m *MockShipmentDirectory) BulkSetStatus(ctx context.Context, ids []kernel.UUID, status shipment.Status) error {
	args := m.Called(ctx, ids, status)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RoundRepository() ports.RoundRepository {
	args := m.Called()
	return args.Get(0).(ports.RoundRepository)
}

func (m *MockUoW) StopRepository() ports.StopRepository {
	args := m.Called()
	return args.Get(0).(ports.StopRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockRoundStopsUoWFactory struct{ mock.Mock }

func (m *MockRoundStopsUoWFactory) Create() commands.RoundStopsUoW {
	args := m.Called()
	return args.Get(0).(commands.RoundStopsUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// roundFixture is a company trip with its stops as stored.
type roundFixture struct {
	round  *round.Round
	pickup *stop.Stop
	stops  []*stop.Stop
}

// newCompanyRound builds [pickup:0, d1:1, ..., dn:n].
func newCompanyRound(t *testing.T, deliveries int) roundFixture {
	t.Helper()

	company := kernel.NewUUID()
	r, err := round.NewRound(kernel.NewUUID(), time.Now(), nil, round.CompanyTrip, &company)
	require.NoError(t, err)

	p, err := stop.NewPickup(kernel.NewUUID(), r.ID(), 0)
	require.NoError(t, err)

	stops := []*stop.Stop{p}
	for i := 1; i <= deliveries; i++ {
		d, err := stop.NewDelivery(kernel.NewUUID(), r.ID(), i, kernel.NewUUID())
		require.NoError(t, err)
		stops = append(stops, d)
	}

	return roundFixture{round: r, pickup: p, stops: stops}
}

// reindexed returns copies of stops with the given order indices, sorted by index.
func reindexed(t *testing.T, order ...*stop.Stop) []*stop.Stop {
	t.Helper()

	out := make([]*stop.Stop, 0, len(order))
	for idx, s := range order {
		c, err := stop.RestoreStop(s.ID(), s.Round(), idx, s.Kind(), s.Shipment())
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

// withIndices returns copies of stops carrying the given indices, which may
// break the stored order on purpose.
func withIndices(t *testing.T, stops []*stop.Stop, indices ...int) []*stop.Stop {
	t.Helper()
	require.Len(t, indices, len(stops))

	out := make([]*stop.Stop, 0, len(stops))
	for i, s := range stops {
		c, err := stop.RestoreStop(s.ID(), s.Round(), indices[i], s.Kind(), s.Shipment())
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}
