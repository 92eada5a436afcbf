package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/deliveryrepo"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for
// DeliveryRepository including the one-delivery-per-parcel constraint.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testDelivery := suite.createTestDelivery(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testDelivery.ID(), testDelivery).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	retrieved, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	suite.Equal(testDelivery.ID(), retrieved.ID())
	suite.Equal(testDelivery.ParcelID(), retrieved.ParcelID())
	suite.Equal("12 Harbour Lane", retrieved.Address().Street())
	suite.Equal("Rotterdam", retrieved.Address().City())
	suite.Equal("3011 XD", retrieved.Address().PostalCode())
	suite.Equal(int64(5000), retrieved.Fee().BaseFee())
	suite.Equal(int64(8000), retrieved.Fee().WeightFee())
	suite.Equal(int64(13000), retrieved.Fee().TotalFee())
	suite.Equal(delivery.PaymentPending, retrieved.PaymentStatus())
	suite.Nil(retrieved.PaymentConfirmedBy())
	suite.Nil(retrieved.DispatchedAt())
	suite.Nil(retrieved.DeliveredAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_SecondDeliveryForParcel_ReturnsConflict() {
	ctx := context.Background()
	parcelID := kernel.NewUUID()

	first := suite.createTestDelivery(parcelID)
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestDelivery(parcelID)

	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByParcel() {
	ctx := context.Background()
	parcelID := kernel.NewUUID()

	testDelivery := suite.createTestDelivery(parcelID)
	suite.tracker.On("TrackAggregate", testDelivery.ID(), testDelivery).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	retrieved, err := suite.repository.GetByParcel(ctx, parcelID)
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrieved.ID())

	_, err = suite.repository.GetByParcel(ctx, kernel.NewUUID())

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsPaymentLifecycle() {
	ctx := context.Background()
	confirmedBy := kernel.NewUUID()

	testDelivery := suite.createTestDelivery(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testDelivery.ID(), testDelivery).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	suite.Require().NoError(testDelivery.ConfirmPayment(confirmedBy))
	suite.Require().NoError(suite.repository.Update(ctx, testDelivery))

	retrieved, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.PaymentConfirmed, retrieved.PaymentStatus())
	suite.Require().NotNil(retrieved.PaymentConfirmedBy())
	suite.True(retrieved.PaymentConfirmedBy().IsEqual(confirmedBy))
	suite.NotNil(retrieved.PaymentConfirmedAt())

	suite.Require().NoError(testDelivery.Dispatch())
	suite.Require().NoError(suite.repository.Update(ctx, testDelivery))

	retrieved, err = suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.NotNil(retrieved.DispatchedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsError() {
	ctx := context.Background()

	testDelivery := suite.createTestDelivery(kernel.NewUUID())

	err := suite.repository.Update(ctx, testDelivery)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createTestDelivery(parcelID kernel.UUID) *delivery.Delivery {
	address, err := delivery.NewAddress("12 Harbour Lane", "Rotterdam", "3011 XD")
	suite.Require().NoError(err)

	weight, err := kernel.NewWeight(3.5)
	suite.Require().NoError(err)

	fee, err := delivery.NewFee(5000, 8000)
	suite.Require().NoError(err)

	testDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(), parcelID, kernel.NewUUID(), address, weight, fee)
	suite.Require().NoError(err)

	return testDelivery
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
