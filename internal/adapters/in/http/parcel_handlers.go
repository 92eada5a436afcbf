package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// IntakeParcelRequest is the body of POST /api/v1/parcels.
type IntakeParcelRequest struct {
	TrackingCode string  `json:"trackingCode"`
	MemberCode   string  `json:"memberCode"`
	WeightKg     float64 `json:"weightKg"`
	Description  string  `json:"description"`
}

// TransitionParcelRequest is the body of POST /api/v1/parcels/:id/transition.
type TransitionParcelRequest struct {
	TargetStatus  string `json:"targetStatus"`
	AdminOverride bool   `json:"adminOverride"`
	Notes         string `json:"notes"`
}

// OverrideOwnershipRequest is the body of POST /api/v1/parcels/:id/ownership.
type OverrideOwnershipRequest struct {
	NewMemberCode string `json:"newMemberCode"`
	Reason        string `json:"reason"`
}

// IntakeParcel handles POST /api/v1/parcels - registers an arriving parcel.
func (s *Server) IntakeParcel(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req IntakeParcelRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	weight, err := kernel.NewWeight(req.WeightKg)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewIntakeParcelCommand(
		parcelID, req.TrackingCode, req.MemberCode, weight, req.Description,
		caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.IntakeParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: parcelID.String()})
}

// TransitionParcel handles POST /api/v1/parcels/:id/transition - moves a
// parcel one step along its lifecycle.
func (s *Server) TransitionParcel(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionParcelRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	target, err := parcel.StatusFromString(req.TargetStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionParcelCommand(
		parcelID, target, caller.ID, caller.Role, req.AdminOverride, req.Notes,
		requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.TransitionParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OverrideOwnership handles POST /api/v1/parcels/:id/ownership - reassigns a
// parcel to another member. The caller identity is trusted as the acting
// admin.
func (s *Server) OverrideOwnership(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req OverrideOwnershipRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewOverrideOwnershipCommand(
		parcelID, req.NewMemberCode, caller.ID, req.Reason, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.OverrideOwnership.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SoftDeleteParcel handles DELETE /api/v1/parcels/:id - hides a parcel from
// reads while preserving its audit trail.
func (s *Server) SoftDeleteParcel(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSoftDeleteParcelCommand(parcelID, caller.ID, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SoftDeleteParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
