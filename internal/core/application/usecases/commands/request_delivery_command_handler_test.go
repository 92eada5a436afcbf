package commands_test

import (
	"context"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeliveryUoW() *MockDeliveryUoW {
	return &MockDeliveryUoW{
		deliveries: new(MockDeliveryRepository),
		parcels:    new(MockParcelRepository),
		history:    new(MockHistoryRepository),
		feeConfigs: new(MockFeeConfigurationRepository),
		audits:     new(MockAuditRepository),
		members:    new(MockMemberDirectory),
	}
}

func newRequestDeliveryCommand(t *testing.T, parcelID, recipientID kernel.UUID) commands.RequestDeliveryCommand {
	t.Helper()
	address, err := delivery.NewAddress("12 Harbor Way", "Portsmouth", "PO1 2AB")
	require.NoError(t, err)
	cmd, err := commands.NewRequestDeliveryCommand(
		kernel.NewUUID(), parcelID, recipientID, address, true, audit.RequestMeta{},
	)
	require.NoError(t, err)
	return cmd
}

func TestRequestDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	stored := restoreStoredParcel(parcelID, recipientID, 3.5)
	cmd := newRequestDeliveryCommand(t, parcelID, recipientID)

	uow := newDeliveryUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.parcels.On("Get", ctx, parcelID).Return(stored, nil).Once(),
		uow.deliveries.On("GetByParcel", ctx, parcelID).
			Return(nil, errs.NewObjectNotFoundError("parcelID", parcelID.String())).Once(),
		uow.feeConfigs.On("ListActive", ctx).Return([]*delivery.FeeConfiguration{}, nil).Once(),
		uow.deliveries.On("Add", ctx, mock.MatchedBy(func(d *delivery.Delivery) bool {
			// defaults: base 5000 plus ceil(3.5)=4 kg at 2000 per kg
			return d.PaymentStatus() == delivery.PaymentPending && d.Fee().TotalFee() == 13000
		})).Return(nil).Once(),
		uow.parcels.On("Update", ctx, mock.MatchedBy(func(p *parcel.Parcel) bool {
			return p.Status() == parcel.DeliveryRequested
		})).Return(nil).Once(),
		uow.history.On("Append", ctx, mock.MatchedBy(func(e *parcel.HistoryEntry) bool {
			return *e.FromStatus() == parcel.Stored && e.ToStatus() == parcel.DeliveryRequested
		})).Return(nil).Once(),
		uow.audits.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
			return e.Action() == audit.ActionDeliveryRequest
		})).Return(nil).Once(),
		uow.members.On("SaveDefaultAddress", ctx, recipientID, cmd.Address()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, mock.Anything).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestDeliveryCommandHandler(factory, services.NewFeeCalculator(), notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.deliveries.AssertExpectations(t)
	uow.parcels.AssertExpectations(t)
	uow.members.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRequestDeliveryCommandHandler_Handle_NotOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	stored := restoreStoredParcel(parcelID, kernel.NewUUID(), 3.5)
	cmd := newRequestDeliveryCommand(t, parcelID, kernel.NewUUID())

	uow := newDeliveryUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.parcels.On("Get", ctx, parcelID).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestDeliveryCommandHandler(factory, services.NewFeeCalculator(), new(MockNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.deliveries.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRequestDeliveryCommandHandler_Handle_ExistingDeliveryConflict(t *testing.T) {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	stored := restoreStoredParcel(parcelID, recipientID, 3.5)
	existing := restorePendingDelivery(kernel.NewUUID(), parcelID, recipientID)
	cmd := newRequestDeliveryCommand(t, parcelID, recipientID)

	uow := newDeliveryUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.parcels.On("Get", ctx, parcelID).Return(stored, nil).Once(),
		uow.deliveries.On("GetByParcel", ctx, parcelID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestDeliveryCommandHandler(factory, services.NewFeeCalculator(), new(MockNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestRequestDeliveryCommandHandler_Handle_ParcelNotStored(t *testing.T) {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	arrived := restoreArrivedParcel(parcelID, &recipientID)
	cmd := newRequestDeliveryCommand(t, parcelID, recipientID)

	uow := newDeliveryUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.parcels.On("Get", ctx, parcelID).Return(arrived, nil).Once()
	uow.deliveries.On("GetByParcel", ctx, parcelID).
		Return(nil, errs.NewObjectNotFoundError("parcelID", parcelID.String())).Once()
	uow.feeConfigs.On("ListActive", ctx).Return([]*delivery.FeeConfiguration{}, nil).Once()
	uow.deliveries.On("Add", ctx, mock.Anything).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestDeliveryCommandHandler(factory, services.NewFeeCalculator(), new(MockNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrTransitionIsNotAllowed)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRequestDeliveryCommandHandler_Handle_AddressSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	stored := restoreStoredParcel(parcelID, recipientID, 3.5)
	cmd := newRequestDeliveryCommand(t, parcelID, recipientID)

	saveErr := errs.NewValueIsInvalidError("address")

	uow := newDeliveryUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.parcels.On("Get", ctx, parcelID).Return(stored, nil).Once()
	uow.deliveries.On("GetByParcel", ctx, parcelID).
		Return(nil, errs.NewObjectNotFoundError("parcelID", parcelID.String())).Once()
	uow.feeConfigs.On("ListActive", ctx).Return([]*delivery.FeeConfiguration{}, nil).Once()
	uow.deliveries.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.parcels.On("Update", ctx, mock.Anything).Return(nil).Once()
	uow.history.On("Append", ctx, mock.Anything).Return(nil).Once()
	uow.audits.On("Append", ctx, mock.Anything).Return(nil).Once()
	uow.members.On("SaveDefaultAddress", ctx, recipientID, cmd.Address()).Return(saveErr).Once()

	notifier := new(MockNotifier)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestDeliveryCommandHandler(factory, services.NewFeeCalculator(), notifier)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, saveErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
