package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AddressRequest is the delivery destination in a delivery request body.
type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// RequestDeliveryRequest is the body of POST /api/v1/deliveries. The caller
// is the recipient; the parcel must belong to them.
type RequestDeliveryRequest struct {
	ParcelID    string         `json:"parcelId"`
	Address     AddressRequest `json:"address"`
	SaveAddress bool           `json:"saveAddress"`
}

// RequestDelivery handles POST /api/v1/deliveries - requests home delivery
// for a stored parcel.
func (s *Server) RequestDelivery(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req RequestDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	parcelID, err := kernel.UUIDFromString(req.ParcelID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("parcelId", err))
	}

	address, err := delivery.NewAddress(req.Address.Street, req.Address.City, req.Address.PostalCode)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewRequestDeliveryCommand(
		deliveryID, parcelID, caller.ID, address, req.SaveAddress, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RequestDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: deliveryID.String()})
}

// ConfirmPayment handles POST /api/v1/deliveries/:id/confirm-payment -
// records that the delivery fee has been paid.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(
		deliveryID, caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchDelivery handles POST /api/v1/deliveries/:id/dispatch - hands the
// parcel to the carrier.
func (s *Server) DispatchDelivery(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDispatchDeliveryCommand(
		deliveryID, caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.DispatchDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete - records
// successful delivery, ending the parcel lifecycle.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(
		deliveryID, caller.ID, caller.Role, requestMeta(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
