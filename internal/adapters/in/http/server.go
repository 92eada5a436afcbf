// Package http provides the echo in-adapter: route registration, request
// binding onto commands and queries, and the idempotency middleware for
// mutating routes. Authentication is out of scope; the actor identity is
// taken from the X-Actor-ID and X-Actor-Role headers as supplied.
package http

import (
	"errors"
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	IntakeParcel      commands.IntakeParcelCommandHandler
	TransitionParcel  commands.TransitionParcelCommandHandler
	OverrideOwnership commands.OverrideOwnershipCommandHandler
	SoftDeleteParcel  commands.SoftDeleteParcelCommandHandler
	ReportException   commands.ReportExceptionCommandHandler
	AssignException   commands.AssignExceptionCommandHandler
	ResolveException  commands.ResolveExceptionCommandHandler
	CancelException   commands.CancelExceptionCommandHandler
	RequestDelivery   commands.RequestDeliveryCommandHandler
	ConfirmPayment    commands.ConfirmPaymentCommandHandler
	DispatchDelivery  commands.DispatchDeliveryCommandHandler
	CompleteDelivery  commands.CompleteDeliveryCommandHandler

	GetParcelHistory queries.GetParcelHistoryQueryHandler
	GetAuditLog      queries.GetAuditLogQueryHandler
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts all routes under /api/v1. Mutating routes go through
// the idempotency middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, idempotency echo.MiddlewareFunc) {
	api := e.Group("/api/v1")

	api.POST("/parcels", s.IntakeParcel, idempotency)
	api.POST("/parcels/:id/transition", s.TransitionParcel, idempotency)
	api.POST("/parcels/:id/ownership", s.OverrideOwnership, idempotency)
	api.DELETE("/parcels/:id", s.SoftDeleteParcel, idempotency)

	api.POST("/exceptions", s.ReportException, idempotency)
	api.POST("/exceptions/:id/assign", s.AssignException, idempotency)
	api.POST("/exceptions/:id/resolve", s.ResolveException, idempotency)
	api.POST("/exceptions/:id/cancel", s.CancelException, idempotency)

	api.POST("/deliveries", s.RequestDelivery, idempotency)
	api.POST("/deliveries/:id/confirm-payment", s.ConfirmPayment, idempotency)
	api.POST("/deliveries/:id/dispatch", s.DispatchDelivery, idempotency)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery, idempotency)

	api.GET("/parcels/:id/history", s.GetParcelHistory)
	api.GET("/audit", s.GetAuditLog)
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// actor is the caller identity taken from request headers.
type actor struct {
	ID   kernel.UUID
	Role string
}

func actorFromRequest(ctx echo.Context) (actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return actor{}, errs.NewValueIsInvalidErrorWithCause(headerActorID, err)
	}

	role := ctx.Request().Header.Get(headerActorRole)
	if role == "" {
		return actor{}, errs.NewValueIsRequiredError(headerActorRole)
	}

	return actor{ID: id, Role: role}, nil
}

func requestMeta(ctx echo.Context) audit.RequestMeta {
	return audit.RequestMeta{
		IP:        ctx.RealIP(),
		UserAgent: ctx.Request().UserAgent(),
	}
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

// statusForError maps the business-failure taxonomy to HTTP status codes.
// Rejected state transitions are reported as 422: the request is well formed
// but the lifecycle rules refuse it.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransitionIsNotAllowed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
