package commands_test

import (
	"context"
	"errors"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSoftDeleteParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	ownerID := kernel.NewUUID()
	stored := restoreStoredParcel(parcelID, ownerID, 2.0)
	cmd, err := commands.NewSoftDeleteParcelCommand(parcelID, kernel.NewUUID(), audit.RequestMeta{})
	require.NoError(t, err)

	uow := newParcelUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.parcels.On("Get", ctx, parcelID).Return(stored, nil).Once(),
		uow.parcels.On("Update", ctx, mock.MatchedBy(func(p *parcel.Parcel) bool {
			return p.IsDeleted()
		})).Return(nil).Once(),
		uow.audits.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
			return e.Action() == audit.ActionParcelSoftDelete && e.ActorRole() == "admin"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSoftDeleteParcelCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.parcels.AssertExpectations(t)
	uow.audits.AssertExpectations(t)
}

func TestSoftDeleteParcelCommandHandler_Handle_AuditFailureAborts(t *testing.T) {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	stored := restoreStoredParcel(parcelID, kernel.NewUUID(), 2.0)
	cmd, err := commands.NewSoftDeleteParcelCommand(parcelID, kernel.NewUUID(), audit.RequestMeta{})
	require.NoError(t, err)

	uow := newParcelUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.parcels.On("Get", ctx, parcelID).Return(stored, nil).Once(),
		uow.parcels.On("Update", ctx, mock.Anything).Return(nil).Once(),
		uow.audits.On("Append", ctx, mock.Anything).Return(errors.New("audit insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSoftDeleteParcelCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
