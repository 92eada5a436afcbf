package feerepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/feerepo"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// FeeConfigurationRepositoryIntegrationTestSuite provides integration tests
// for the fee configuration read model.
type FeeConfigurationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *feerepo.GormFeeConfigurationRepository
}

func (suite *FeeConfigurationRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&feerepo.FeeConfigurationDTO{}))
}

func (suite *FeeConfigurationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE fee_configurations").Error)

	suite.repository = feerepo.NewGormFeeConfigurationRepository(suite.db)
}

func (suite *FeeConfigurationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *FeeConfigurationRepositoryIntegrationTestSuite) TestListActive_ReturnsOnlyActiveOrdered() {
	ctx := context.Background()

	max := 5.0
	light := suite.createTestConfig(0, &max, 3000, 1500, true)
	heavy := suite.createTestConfig(5.0, nil, 6000, 2500, true)
	retired := suite.createTestConfig(0, nil, 1000, 1000, false)

	for _, config := range []*delivery.FeeConfiguration{heavy, light, retired} {
		suite.Require().NoError(suite.repository.Add(ctx, config))
	}

	configs, err := suite.repository.ListActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(configs, 2)

	suite.Equal(light.ID(), configs[0].ID(), "Configurations come ordered by minimum weight")
	suite.Equal(heavy.ID(), configs[1].ID())
	suite.Require().NotNil(configs[0].MaxWeightKg())
	suite.InDelta(5.0, *configs[0].MaxWeightKg(), 0.0001)
	suite.Nil(configs[1].MaxWeightKg(), "Open-ended band has no upper bound")
	suite.Equal(int64(6000), configs[1].BaseFee())
	suite.Equal(int64(2500), configs[1].PerKgRate())
}

func (suite *FeeConfigurationRepositoryIntegrationTestSuite) TestListActive_EmptyTable() {
	ctx := context.Background()

	configs, err := suite.repository.ListActive(ctx)
	suite.Require().NoError(err)
	suite.Empty(configs)
}

func (suite *FeeConfigurationRepositoryIntegrationTestSuite) createTestConfig(
	minWeightKg float64,
	maxWeightKg *float64,
	baseFee int64,
	perKgRate int64,
	isActive bool,
) *delivery.FeeConfiguration {
	config, err := delivery.NewFeeConfiguration(
		kernel.NewUUID(), minWeightKg, maxWeightKg, baseFee, perKgRate, isActive)
	suite.Require().NoError(err)

	return config
}

func TestFeeConfigurationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FeeConfigurationRepositoryIntegrationTestSuite))
}
