package commands_test

import (
	"context"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}
func (m *MockParcelRepository) ExistsByTrackingCode(ctx context.Context, trackingCode string) (bool, error) {
	args := m.Called(ctx, trackingCode)
	return args.Bool(0), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, entry *parcel.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockHistoryRepository) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*parcel.HistoryEntry, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.HistoryEntry), args.Error(1)
}

type MockExceptionRepository struct{ mock.Mock }

func (m *MockExceptionRepository) Add(ctx context.Context, e *exception.Exception) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockExceptionRepository) Update(ctx context.Context, e *exception.Exception) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockExceptionRepository) Get(ctx context.Context, id kernel.UUID) (*exception.Exception, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exception.Exception), args.Error(1)
}
func (m *MockExceptionRepository) CountOpenByParcel(ctx context.Context, parcelID kernel.UUID) (int64, error) {
	args := m.Called(ctx, parcelID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockExceptionRepository) ExistsOpenByParcelAndKind(
	ctx context.Context, parcelID kernel.UUID, kind exception.Kind,
) (bool, error) {
	args := m.Called(ctx, parcelID, kind)
	return args.Bool(0), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *MockDeliveryRepository) GetByParcel(ctx context.Context, parcelID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockFeeConfigurationRepository struct{ mock.Mock }

func (m *MockFeeConfigurationRepository) ListActive(ctx context.Context) ([]*delivery.FeeConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.FeeConfiguration), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*audit.Entry), args.Get(1).(int64), args.Error(2)
}

type MockMemberDirectory struct{ mock.Mock }

func (m *MockMemberDirectory) LookupByCode(ctx context.Context, memberCode string) (*ports.MemberRecord, error) {
	args := m.Called(ctx, memberCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.MemberRecord), args.Error(1)
}
func (m *MockMemberDirectory) SaveDefaultAddress(
	ctx context.Context, memberID kernel.UUID, address delivery.Address,
) error {
	args := m.Called(ctx, memberID, address)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockParcelUoW struct {
	mock.Mock
	parcels *MockParcelRepository
	history *MockHistoryRepository
	audits  *MockAuditRepository
}

func (m *MockParcelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockParcelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockParcelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository { return m.parcels }
func (m *MockParcelUoW) HistoryRepository() ports.HistoryRepository { return m.history }
func (m *MockParcelUoW) AuditRepository() ports.AuditRepository { return m.audits }

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockIntakeUoW struct {
	mock.Mock
	parcels    *MockParcelRepository
	history    *MockHistoryRepository
	exceptions *MockExceptionRepository
	audits     *MockAuditRepository
}

func (m *MockIntakeUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockIntakeUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockIntakeUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockIntakeUoW) ParcelRepository() ports.ParcelRepository { return m.parcels }
func (m *MockIntakeUoW) HistoryRepository() ports.HistoryRepository { return m.history }
func (m *MockIntakeUoW) ExceptionRepository() ports.ExceptionRepository { return m.exceptions }
func (m *MockIntakeUoW) AuditRepository() ports.AuditRepository { return m.audits }

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockExceptionUoW struct {
	mock.Mock
	exceptions *MockExceptionRepository
	parcels    *MockParcelRepository
	audits     *MockAuditRepository
}

func (m *MockExceptionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockExceptionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockExceptionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockExceptionUoW) ExceptionRepository() ports.ExceptionRepository { return m.exceptions }
func (m *MockExceptionUoW) ParcelRepository() ports.ParcelRepository { return m.parcels }
func (m *MockExceptionUoW) AuditRepository() ports.AuditRepository { return m.audits }

type MockExceptionUoWFactory struct{ mock.Mock }

func (m *MockExceptionUoWFactory) Create() commands.ExceptionUoW {
	args := m.Called()
	return args.Get(0).(commands.ExceptionUoW)
}

type MockDeliveryUoW struct {
	mock.Mock
	deliveries *MockDeliveryRepository
	parcels    *MockParcelRepository
	history    *MockHistoryRepository
	feeConfigs *MockFeeConfigurationRepository
	audits     *MockAuditRepository
	members    *MockMemberDirectory
}

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository { return m.deliveries }
func (m *MockDeliveryUoW) ParcelRepository() ports.ParcelRepository { return m.parcels }
func (m *MockDeliveryUoW) HistoryRepository() ports.HistoryRepository { return m.history }
func (m *MockDeliveryUoW) FeeConfigurationRepository() ports.FeeConfigurationRepository {
	return m.feeConfigs
}
func (m *MockDeliveryUoW) AuditRepository() ports.AuditRepository { return m.audits }
func (m *MockDeliveryUoW) MemberDirectory() ports.MemberDirectory { return m.members }

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

// Aggregate fixtures shared by the handler tests.

func restoreStoredParcel(id, ownerID kernel.UUID, weightKg float64) *parcel.Parcel {
	weight, err := kernel.NewWeight(weightKg)
	if err != nil {
		panic(err)
	}
	storedAt := time.Now().UTC()
	p, err := parcel.RestoreParcel(
		id, "TRK-"+id.String()[:8], "M-1001", &ownerID, kernel.NewUUID(),
		parcel.Stored, false, weight, &storedAt, false,
	)
	if err != nil {
		panic(err)
	}
	return p
}

func restoreArrivedParcel(id kernel.UUID, ownerID *kernel.UUID) *parcel.Parcel {
	weight, err := kernel.NewWeight(1.5)
	if err != nil {
		panic(err)
	}
	p, err := parcel.RestoreParcel(
		id, "TRK-"+id.String()[:8], "M-1001", ownerID, kernel.NewUUID(),
		parcel.Arrived, ownerID == nil, weight, nil, false,
	)
	if err != nil {
		panic(err)
	}
	return p
}

func restoreOpenException(id, parcelID kernel.UUID) *exception.Exception {
	e, err := exception.RestoreException(
		id, parcelID, exception.KindDamagedParcel, exception.StatusOpen,
		"crushed corner", nil, kernel.NewUUID(), nil, nil,
	)
	if err != nil {
		panic(err)
	}
	return e
}

func restorePendingDelivery(id, parcelID, recipientID kernel.UUID) *delivery.Delivery {
	address, err := delivery.NewAddress("12 Harbor Way", "Portsmouth", "PO1 2AB")
	if err != nil {
		panic(err)
	}
	weight, err := kernel.NewWeight(3.5)
	if err != nil {
		panic(err)
	}
	fee, err := delivery.NewFee(5000, 8000)
	if err != nil {
		panic(err)
	}
	d, err := delivery.RestoreDelivery(
		id, parcelID, recipientID, address, weight, fee,
		delivery.PaymentPending, nil, nil, nil, nil,
	)
	if err != nil {
		panic(err)
	}
	return d
}
