package stoprepo_test

import (
	"context"
	"testing"

	postgresadapter "roundplanner/internal/adapters/out/postgres"
	"roundplanner/internal/adapters/out/postgres/pgtest"
	"roundplanner/internal/adapters/out/postgres/stoprepo"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type StopRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	roundID kernel.UUID
}

func (suite *StopRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg

	suite.Require().NoError(postgresadapter.Migrate(pg.DB))
}

func (suite *StopRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.roundID = kernel.NewUUID()
}

func (suite *StopRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *StopRepositoryIntegrationTestSuite) repo(db *gorm.DB) *stoprepo.GormStopRepository {
	return stoprepo.NewGormStopRepository(db)
}

// seed stores a pickup followed by n deliveries.
func (suite *StopRepositoryIntegrationTestSuite) seed(n int) []*stop.Stop {
	pickup, err := stop.NewPickup(kernel.NewUUID(), suite.roundID, 0)
	suite.Require().NoError(err)

	stops := []*stop.Stop{pickup}
	for i := 1; i <= n; i++ {
		d, err := stop.NewDelivery(kernel.NewUUID(), suite.roundID, i, kernel.NewUUID())
		suite.Require().NoError(err)
		stops = append(stops, d)
	}

	suite.Require().NoError(suite.repo(suite.pg.DB).AddBatch(context.Background(), stops))
	return stops
}

func (suite *StopRepositoryIntegrationTestSuite) TestListOrdered_ReturnsIndexOrder() {
	ctx := context.Background()
	stops := suite.seed(3)

	// Another round's stops never leak into the listing.
	other, err := stop.NewPickup(kernel.NewUUID(), kernel.NewUUID(), 0)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo(suite.pg.DB).AddBatch(ctx, []*stop.Stop{other}))

	got, err := suite.repo(suite.pg.DB).ListOrdered(ctx, suite.roundID)
	suite.Require().NoError(err)
	suite.Require().Len(got, 4)
	for i, s := range got {
		suite.Equal(i, s.OrderIndex())
		suite.True(s.IsEqual(stops[i]))
	}
	suite.True(got[0].IsPickup())
	suite.Require().NotNil(got[1].Shipment())
	suite.True(got[1].Shipment().IsEqual(*stops[1].Shipment()))
	suite.NoError(stop.ValidateSequence(got))
}

func (suite *StopRepositoryIntegrationTestSuite) TestListOrdered_UnknownRound_Empty() {
	got, err := suite.repo(suite.pg.DB).ListOrdered(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *StopRepositoryIntegrationTestSuite) TestAddBatch_SecondPickup_Conflict() {
	suite.seed(1)

	extra, err := stop.NewPickup(kernel.NewUUID(), suite.roundID, 2)
	suite.Require().NoError(err)

	err = suite.repo(suite.pg.DB).AddBatch(context.Background(), []*stop.Stop{extra})
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *StopRepositoryIntegrationTestSuite) TestAddBatch_SameShipmentTwice_Conflict() {
	stops := suite.seed(1)

	dup, err := stop.NewDelivery(kernel.NewUUID(), suite.roundID, 2, *stops[1].Shipment())
	suite.Require().NoError(err)

	err = suite.repo(suite.pg.DB).AddBatch(context.Background(), []*stop.Stop{dup})
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *StopRepositoryIntegrationTestSuite) TestWriteOrder_SwapInsideTransaction() {
	ctx := context.Background()
	stops := suite.seed(2)

	err := suite.pg.DB.Transaction(func(tx *gorm.DB) error {
		repo := suite.repo(tx)
		if err := repo.WriteOrder(ctx, suite.roundID, stops[1].ID(), 2); err != nil {
			return err
		}
		return repo.WriteOrder(ctx, suite.roundID, stops[2].ID(), 1)
	})
	suite.Require().NoError(err)

	got, err := suite.repo(suite.pg.DB).ListOrdered(ctx, suite.roundID)
	suite.Require().NoError(err)
	suite.True(got[1].IsEqual(stops[2]))
	suite.True(got[2].IsEqual(stops[1]))
}

func (suite *StopRepositoryIntegrationTestSuite) TestWriteOrder_DuplicateIndex_FailsAtCommit() {
	ctx := context.Background()
	stops := suite.seed(2)

	err := suite.pg.DB.Transaction(func(tx *gorm.DB) error {
		return suite.repo(tx).WriteOrder(ctx, suite.roundID, stops[1].ID(), 2)
	})
	suite.Require().Error(err)

	got, err := suite.repo(suite.pg.DB).ListOrdered(ctx, suite.roundID)
	suite.Require().NoError(err)
	suite.Equal(1, got[1].OrderIndex())
}

func (suite *StopRepositoryIntegrationTestSuite) TestWriteOrder_UnknownStop_KeepsTransactionUsable() {
	ctx := context.Background()
	stops := suite.seed(2)

	err := suite.pg.DB.Transaction(func(tx *gorm.DB) error {
		repo := suite.repo(tx)

		missing := repo.WriteOrder(ctx, suite.roundID, kernel.NewUUID(), 1)
		suite.ErrorIs(missing, errs.ErrObjectNotFound)

		// A stop of another round is not found either.
		wrongRound := repo.WriteOrder(ctx, kernel.NewUUID(), stops[1].ID(), 2)
		suite.ErrorIs(wrongRound, errs.ErrObjectNotFound)

		if err := repo.WriteOrder(ctx, suite.roundID, stops[1].ID(), 2); err != nil {
			return err
		}
		return repo.WriteOrder(ctx, suite.roundID, stops[2].ID(), 1)
	})
	suite.Require().NoError(err)
}

func (suite *StopRepositoryIntegrationTestSuite) TestWriteOrder_NegativeIndex_Invalid() {
	stops := suite.seed(1)

	err := suite.repo(suite.pg.DB).WriteOrder(context.Background(), suite.roundID, stops[1].ID(), -1)
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func TestStopRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StopRepositoryIntegrationTestSuite))
}
