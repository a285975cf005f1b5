package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/presetrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListPresetsQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.ListPresetsQueryHandler
	presetRepo *presetrepo.GormPresetRepository
}

func (suite *ListPresetsQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&presetrepo.BoxPresetDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListPresetsQueryHandler(db)
	suite.presetRepo = presetrepo.NewGormPresetRepository(db, mockAggregateTracker{})
}

func (suite *ListPresetsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListPresetsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE box_presets").Error
	suite.Require().NoError(err)
}

func (suite *ListPresetsQueryHandlerTestSuite) TestHandle_EmptyCatalog_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewListPresetsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListPresetsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListPresetsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewListPresetsQuery constructor")
}

func (suite *ListPresetsQueryHandlerTestSuite) TestHandle_ReturnsPresetsOrderedByName() {
	ctx := context.Background()

	suite.addPreset(ctx, "Small Box", 8, 6, 4, 0)
	suite.addPreset(ctx, "Envelope", 12, 9, 0.5, 0.2)
	suite.addPreset(ctx, "Medium Box", 12, 10, 4, 2.0)

	result, err := suite.handler.Handle(ctx, queries.NewListPresetsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("Envelope", result[0].Name)
	suite.Equal("Medium Box", result[1].Name)
	suite.Equal("Small Box", result[2].Name)

	envelope := result[0]
	dims, err := kernel.NewDimensions(12, 9, 0.5)
	suite.Require().NoError(err)
	suite.Equal(dims, envelope.Dimensions)
	suite.Require().NotNil(envelope.DefaultWeightLb)
	suite.InDelta(0.2, *envelope.DefaultWeightLb, 0.0001)

	suite.Nil(result[2].DefaultWeightLb)
}

// addPreset seeds a preset. A zero defaultWeightLb means no default weight.
func (suite *ListPresetsQueryHandlerTestSuite) addPreset(
	ctx context.Context, name string, length, width, height, defaultWeightLb float64,
) {
	dims, err := kernel.NewDimensions(length, width, height)
	suite.Require().NoError(err)

	var defaultWeight *kernel.Weight
	if defaultWeightLb > 0 {
		w, weightErr := kernel.NewWeight(defaultWeightLb)
		suite.Require().NoError(weightErr)
		defaultWeight = &w
	}

	preset, err := catalog.NewBoxPreset(kernel.NewUUID(), name, dims, defaultWeight, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.presetRepo.Add(ctx, preset))
}

func TestListPresetsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListPresetsQueryHandlerTestSuite))
}
