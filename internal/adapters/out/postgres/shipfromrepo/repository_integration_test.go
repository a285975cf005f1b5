package shipfromrepo_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/shipfromrepo"
	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ShipFromRepositoryIntegrationTestSuite provides integration tests for the
// singleton ship-from record using PostgreSQL containers.
type ShipFromRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipfromrepo.GormShipFromRepository
}

func (suite *ShipFromRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shipfromrepo.ShipFromDTO{}))
}

func (suite *ShipFromRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE ship_from_settings").Error)

	suite.repository = shipfromrepo.NewGormShipFromRepository(suite.db)
}

func (suite *ShipFromRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipFromRepositoryIntegrationTestSuite) TestGet_NoRecord_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ShipFromRepositoryIntegrationTestSuite) TestSaveAndGet_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestSettings("Acme Fulfillment", "1 Depot Rd")
	suite.Require().NoError(suite.repository.Save(ctx, original))

	retrieved, err := suite.repository.Get(ctx)
	suite.Require().NoError(err)

	addr := retrieved.Address()
	suite.Equal("Acme Fulfillment", addr.Name())
	suite.Equal("Acme Corp", addr.Company())
	suite.Equal("1 Depot Rd", addr.Line1())
	suite.Equal("Suite 4", addr.Line2())
	suite.Equal("Springfield", addr.City())
	suite.Equal("IL", addr.State())
	suite.Equal("62701", addr.PostalCode())
	suite.Equal("US", addr.CountryCode())
	suite.Equal("+1 555 0100", addr.Phone())
	suite.WithinDuration(original.UpdatedAt(), retrieved.UpdatedAt(), time.Second)
}

func (suite *ShipFromRepositoryIntegrationTestSuite) TestSave_SecondSave_ReplacesSingletonRow() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Save(ctx, suite.createTestSettings("Acme Fulfillment", "1 Depot Rd")))
	suite.Require().NoError(suite.repository.Save(ctx, suite.createTestSettings("Acme West", "9 Harbor Way")))

	// Saves upsert onto the constant id, so the table never grows.
	var count int64
	suite.Require().NoError(suite.db.Model(&shipfromrepo.ShipFromDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	retrieved, err := suite.repository.Get(ctx)
	suite.Require().NoError(err)
	suite.Equal("Acme West", retrieved.Address().Name())
	suite.Equal("9 Harbor Way", retrieved.Address().Line1())
}

// createTestSettings builds a ship-from record with a full address.
func (suite *ShipFromRepositoryIntegrationTestSuite) createTestSettings(
	name, line1 string,
) *catalog.ShipFromSettings {
	addr, err := kernel.NewAddress(
		name, "Acme Corp", line1, "Suite 4",
		"Springfield", "IL", "62701", "US", "+1 555 0100",
	)
	suite.Require().NoError(err)

	settings, err := catalog.NewShipFromSettings(addr, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return settings
}

func TestShipFromRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipFromRepositoryIntegrationTestSuite))
}
