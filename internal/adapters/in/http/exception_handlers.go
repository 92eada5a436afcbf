package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ReportExceptionRequest is the body of POST /api/v1/exceptions.
type ReportExceptionRequest struct {
	ParcelID    string `json:"parcelId"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// ResolveExceptionRequest is the body of POST /api/v1/exceptions/:id/resolve.
type ResolveExceptionRequest struct {
	Resolution string `json:"resolution"`
}

// ReportException handles POST /api/v1/exceptions - opens an exception
// against a parcel, locking its lifecycle.
func (s *Server) ReportException(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ReportExceptionRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	parcelID, err := kernel.UUIDFromString(req.ParcelID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("parcelId", err))
	}

	kind, err := exception.KindFromString(req.Kind)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReportExceptionCommand(
		parcelID, kind, req.Description, caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.ReportException.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AssignException handles POST /api/v1/exceptions/:id/assign - the caller
// takes ownership of working the exception.
func (s *Server) AssignException(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	exceptionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignExceptionCommand(
		exceptionID, caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AssignException.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveException handles POST /api/v1/exceptions/:id/resolve - closes the
// exception with a resolution note, unlocking the parcel if it was the last
// open one.
func (s *Server) ResolveException(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	exceptionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ResolveExceptionRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewResolveExceptionCommand(
		exceptionID, req.Resolution, caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.ResolveException.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelException handles POST /api/v1/exceptions/:id/cancel - discards an
// exception opened in error.
func (s *Server) CancelException(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	exceptionID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelExceptionCommand(
		exceptionID, caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CancelException.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
