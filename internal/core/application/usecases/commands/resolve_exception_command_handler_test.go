package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newResolveCommand(t *testing.T, exceptionID kernel.UUID) commands.ResolveExceptionCommand {
	t.Helper()
	cmd, err := commands.NewResolveExceptionCommand(
		exceptionID, "relabeled and reweighed", kernel.NewUUID(), "staff", audit.RequestMeta{},
	)
	require.NoError(t, err)
	return cmd
}

func lockedParcel(parcelID, ownerID kernel.UUID) *parcel.Parcel {
	weight, err := kernel.NewWeight(2.0)
	if err != nil {
		panic(err)
	}
	p, err := parcel.RestoreParcel(
		parcelID, "TRK-LOCKED", "M-1001", &ownerID, kernel.NewUUID(),
		parcel.Arrived, true, weight, nil, false,
	)
	if err != nil {
		panic(err)
	}
	return p
}

func TestResolveExceptionCommandHandler_Handle_LastExceptionUnlocks(t *testing.T) {
	ctx := context.Background()
	exceptionID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	ownerID := kernel.NewUUID()
	open := restoreOpenException(exceptionID, parcelID)
	locked := lockedParcel(parcelID, ownerID)
	cmd := newResolveCommand(t, exceptionID)

	uow := newExceptionUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.exceptions.On("Get", ctx, exceptionID).Return(open, nil).Once(),
		uow.exceptions.On("Update", ctx, mock.MatchedBy(func(e *exception.Exception) bool {
			return e.Status() == exception.StatusResolved &&
				e.Resolution() != nil && e.Handler() != nil && e.ResolvedAt() != nil
		})).Return(nil).Once(),
		uow.exceptions.On("CountOpenByParcel", ctx, parcelID).Return(int64(0), nil).Once(),
		uow.parcels.On("Get", ctx, parcelID).Return(locked, nil).Once(),
		uow.parcels.On("Update", ctx, mock.MatchedBy(func(p *parcel.Parcel) bool {
			return !p.HasException()
		})).Return(nil).Once(),
		uow.audits.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
			return e.Action() == audit.ActionExceptionResolve
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.RecipientID.IsEqual(ownerID) && n.Title == "Exception resolved"
	})).Return(nil).Once()

	factory := new(MockExceptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveExceptionCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.exceptions.AssertExpectations(t)
	uow.parcels.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestResolveExceptionCommandHandler_Handle_OthersStillOpenKeepsLock(t *testing.T) {
	ctx := context.Background()
	exceptionID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	open := restoreOpenException(exceptionID, parcelID)
	cmd := newResolveCommand(t, exceptionID)

	uow := newExceptionUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.exceptions.On("Get", ctx, exceptionID).Return(open, nil).Once(),
		uow.exceptions.On("Update", ctx, mock.Anything).Return(nil).Once(),
		uow.exceptions.On("CountOpenByParcel", ctx, parcelID).Return(int64(1), nil).Once(),
		uow.audits.On("Append", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier := new(MockNotifier)
	factory := new(MockExceptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveExceptionCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.parcels.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestResolveExceptionCommandHandler_Handle_OrphanParcelStaysLocked(t *testing.T) {
	ctx := context.Background()
	exceptionID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	open := restoreOpenException(exceptionID, parcelID)
	orphan := restoreArrivedParcel(parcelID, nil)
	cmd := newResolveCommand(t, exceptionID)

	uow := newExceptionUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.exceptions.On("Get", ctx, exceptionID).Return(open, nil).Once(),
		uow.exceptions.On("Update", ctx, mock.Anything).Return(nil).Once(),
		uow.exceptions.On("CountOpenByParcel", ctx, parcelID).Return(int64(0), nil).Once(),
		uow.parcels.On("Get", ctx, parcelID).Return(orphan, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockExceptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveExceptionCommandHandler(factory, new(MockNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestResolveExceptionCommandHandler_Handle_AlreadyResolved(t *testing.T) {
	ctx := context.Background()
	exceptionID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	resolution := "done"
	handlerID := kernel.NewUUID()
	now := time.Now().UTC()
	resolved, err := exception.RestoreException(
		exceptionID, parcelID, exception.KindDamagedParcel, exception.StatusResolved,
		"crushed corner", &resolution, kernel.NewUUID(), &handlerID, &now,
	)
	require.NoError(t, err)
	cmd := newResolveCommand(t, exceptionID)

	uow := newExceptionUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.exceptions.On("Get", ctx, exceptionID).Return(resolved, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockExceptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveExceptionCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.exceptions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
