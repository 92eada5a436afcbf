package idempotencyrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/idempotencyrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// IdempotencyStoreIntegrationTestSuite provides integration tests for the
// cached-response store backing the idempotency middleware.
type IdempotencyStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *idempotencyrepo.GormIdempotencyStore
}

func (suite *IdempotencyStoreIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&idempotencyrepo.RecordDTO{}))
}

func (suite *IdempotencyStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE idempotency_records").Error)

	suite.store = idempotencyrepo.NewGormIdempotencyStore(suite.db)
}

func (suite *IdempotencyStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestSaveAndGet_RoundTrip() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	record := suite.createTestRecord("0123456789abcdef", time.Now().UTC().Add(24*time.Hour))
	record.UserID = &userID

	suite.Require().NoError(suite.store.Save(ctx, record))

	retrieved, err := suite.store.Get(ctx, record.Key, record.Endpoint, record.Method)
	suite.Require().NoError(err)

	suite.Equal(record.Key, retrieved.Key)
	suite.Equal("/api/v1/parcels", retrieved.Endpoint)
	suite.Equal("POST", retrieved.Method)
	suite.Equal(201, retrieved.StatusCode)
	suite.JSONEq(`{"id":"p-1"}`, string(retrieved.ResponseBody))
	suite.Require().NotNil(retrieved.UserID)
	suite.True(retrieved.UserID.IsEqual(userID))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestGet_ScopedByEndpointAndMethod() {
	ctx := context.Background()

	record := suite.createTestRecord("0123456789abcdef", time.Now().UTC().Add(time.Hour))
	suite.Require().NoError(suite.store.Save(ctx, record))

	_, err := suite.store.Get(ctx, record.Key, "/api/v1/deliveries", record.Method)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr, "Same key against another endpoint is a distinct record")
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestGet_ExpiredRecordReadsAsAbsent() {
	ctx := context.Background()

	record := suite.createTestRecord("0123456789abcdef", time.Now().UTC().Add(-time.Minute))
	suite.Require().NoError(suite.store.Save(ctx, record))

	_, err := suite.store.Get(ctx, record.Key, record.Endpoint, record.Method)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestGet_ExpiredRecordFreesTheSlot() {
	ctx := context.Background()

	stale := suite.createTestRecord("0123456789abcdef", time.Now().UTC().Add(-time.Minute))
	suite.Require().NoError(suite.store.Save(ctx, stale))

	_, err := suite.store.Get(ctx, stale.Key, stale.Endpoint, stale.Method)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	fresh := suite.createTestRecord(stale.Key, time.Now().UTC().Add(time.Hour))
	fresh.ResponseBody = []byte(`{"id":"p-2"}`)
	suite.Require().NoError(suite.store.Save(ctx, fresh),
		"The retried request must be able to cache a fresh response under the same key")

	retrieved, err := suite.store.Get(ctx, fresh.Key, fresh.Endpoint, fresh.Method)
	suite.Require().NoError(err)
	suite.JSONEq(`{"id":"p-2"}`, string(retrieved.ResponseBody))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestSave_DuplicateKey_ReturnsConflict() {
	ctx := context.Background()

	record := suite.createTestRecord("0123456789abcdef", time.Now().UTC().Add(time.Hour))
	suite.Require().NoError(suite.store.Save(ctx, record))

	err := suite.store.Save(ctx, record)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestDeleteExpired() {
	ctx := context.Background()
	now := time.Now().UTC()

	expired1 := suite.createTestRecord("expired-key-000000", now.Add(-2*time.Hour))
	expired2 := suite.createTestRecord("expired-key-000001", now.Add(-time.Minute))
	live := suite.createTestRecord("live-key-00000000", now.Add(time.Hour))

	for _, record := range []ports.IdempotencyRecord{expired1, expired2, live} {
		suite.Require().NoError(suite.store.Save(ctx, record))
	}

	deleted, err := suite.store.DeleteExpired(ctx, now)
	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)

	_, err = suite.store.Get(ctx, live.Key, live.Endpoint, live.Method)
	suite.Require().NoError(err, "Live record survives the sweep")
}

func (suite *IdempotencyStoreIntegrationTestSuite) createTestRecord(key string, expiresAt time.Time) ports.IdempotencyRecord {
	return ports.IdempotencyRecord{
		Key:          key,
		Endpoint:     "/api/v1/parcels",
		Method:       "POST",
		StatusCode:   201,
		ResponseBody: []byte(`{"id":"p-1"}`),
		ExpiresAt:    expiresAt,
	}
}

func TestIdempotencyStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyStoreIntegrationTestSuite))
}
