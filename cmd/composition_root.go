package cmd

import (
	"log/slog"

	adapterhttp "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/notify"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/idempotencyrepo"
	"parceltrack/internal/adapters/out/postgres/memberrepo"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	members    ports.MemberDirectory
	notifier   ports.Notifier
	idemStore  ports.IdempotencyStore
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		members:    memberrepo.NewGormMemberDirectory(gormDB),
		notifier:   notify.NewLogNotifier(logger),
		idemStore:  idempotencyrepo.NewGormIdempotencyStore(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) IdempotencyStore() ports.IdempotencyStore {
	return c.idemStore
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// CreateHTTPHandlers builds the full handler set for the HTTP server.
func (c *CompositionRoot) CreateHTTPHandlers() adapterhttp.Handlers {
	return adapterhttp.Handlers{
		IntakeParcel:      c.CreateIntakeParcelCommandHandler(),
		TransitionParcel:  c.CreateTransitionParcelCommandHandler(),
		OverrideOwnership: c.CreateOverrideOwnershipCommandHandler(),
		SoftDeleteParcel:  c.CreateSoftDeleteParcelCommandHandler(),
		ReportException:   c.CreateReportExceptionCommandHandler(),
		AssignException:   c.CreateAssignExceptionCommandHandler(),
		ResolveException:  c.CreateResolveExceptionCommandHandler(),
		CancelException:   c.CreateCancelExceptionCommandHandler(),
		RequestDelivery:   c.CreateRequestDeliveryCommandHandler(),
		ConfirmPayment:    c.CreateConfirmPaymentCommandHandler(),
		DispatchDelivery:  c.CreateDispatchDeliveryCommandHandler(),
		CompleteDelivery:  c.CreateCompleteDeliveryCommandHandler(),
		GetParcelHistory:  c.CreateGetParcelHistoryQueryHandler(),
		GetAuditLog:       c.CreateGetAuditLogQueryHandler(),
	}
}

func (c *CompositionRoot) CreateIntakeParcelCommandHandler() commands.IntakeParcelCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIntakeParcelCommandHandler(f, c.members, c.notifier)
}

func (c *CompositionRoot) CreateTransitionParcelCommandHandler() commands.TransitionParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionParcelCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateOverrideOwnershipCommandHandler() commands.OverrideOwnershipCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOverrideOwnershipCommandHandler(f, c.members)
}

func (c *CompositionRoot) CreateSoftDeleteParcelCommandHandler() commands.SoftDeleteParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSoftDeleteParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateReportExceptionCommandHandler() commands.ReportExceptionCommandHandler {
	var f commands.ExceptionUoWFactory = FuncExceptionUoWFactory(func() commands.ExceptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportExceptionCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAssignExceptionCommandHandler() commands.AssignExceptionCommandHandler {
	var f commands.ExceptionUoWFactory = FuncExceptionUoWFactory(func() commands.ExceptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignExceptionCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveExceptionCommandHandler() commands.ResolveExceptionCommandHandler {
	var f commands.ExceptionUoWFactory = FuncExceptionUoWFactory(func() commands.ExceptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveExceptionCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCancelExceptionCommandHandler() commands.CancelExceptionCommandHandler {
	var f commands.ExceptionUoWFactory = FuncExceptionUoWFactory(func() commands.ExceptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelExceptionCommandHandler(f)
}

func (c *CompositionRoot) CreateRequestDeliveryCommandHandler() commands.RequestDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestDeliveryCommandHandler(f, services.NewFeeCalculator(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateDispatchDeliveryCommandHandler() commands.DispatchDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchDeliveryCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetParcelHistoryQueryHandler() queries.GetParcelHistoryQueryHandler {
	return queries.NewGetParcelHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditLogQueryHandler() queries.GetAuditLogQueryHandler {
	return queries.NewGetAuditLogQueryHandler(c.gormDB)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncExceptionUoWFactory func() commands.ExceptionUoW

func (f FuncExceptionUoWFactory) Create() commands.ExceptionUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
