package commands

import (
	"context"
	"encoding/json"
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// ownershipChange is the audit snapshot recorded by an ownership override.
// The reason travels in the new-state snapshot so prior and new owner plus
// the justification sit in one audit entry.
type ownershipChange struct {
	OwnerID    *string `json:"ownerId"`
	MemberCode string  `json:"memberCode"`
	Reason     string  `json:"reason,omitempty"`
}

// OverrideOwnershipCommandHandler handles admin ownership overrides.
type OverrideOwnershipCommandHandler struct {
	uowFactory ParcelUoWFactory
	members    ports.MemberDirectory
}

// NewOverrideOwnershipCommandHandler creates a handler for ownership overrides.
func NewOverrideOwnershipCommandHandler(
	uowFactory ParcelUoWFactory,
	members ports.MemberDirectory,
) OverrideOwnershipCommandHandler {
	return OverrideOwnershipCommandHandler{
		uowFactory: uowFactory,
		members:    members,
	}
}

// Handle processes the ownership override command.
// A member code that resolves to an inactive or deleted member is rejected;
// a code that resolves to nothing rebinds the parcel as an orphan.
func (h *OverrideOwnershipCommandHandler) Handle(ctx context.Context, cmd OverrideOwnershipCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ownerID, err := h.resolveOwner(ctx, cmd.NewMemberCode())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	trackedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	prevData, err := json.Marshal(ownershipChange{
		OwnerID:    uuidString(trackedParcel.Owner()),
		MemberCode: trackedParcel.MemberCode(),
	})
	if err != nil {
		return err
	}

	if err = trackedParcel.OverrideOwner(ownerID, cmd.NewMemberCode()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return err
	}

	newData, err := json.Marshal(ownershipChange{
		OwnerID:    uuidString(trackedParcel.Owner()),
		MemberCode: trackedParcel.MemberCode(),
		Reason:     cmd.Reason(),
	})
	if err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.AdminID(), "admin", audit.ActionOwnershipOverride,
		entityTypeParcel, trackedParcel.ID(), prevData, newData,
		audit.Links{ParcelID: ptrUUID(trackedParcel.ID())}, cmd.Meta(),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, auditEntry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveOwner resolves the new member code. Unlike intake, a code that hits
// an inactive or deleted member is an error rather than an orphan: an admin
// typing a dead code is a mistake to surface, not ambiguity to tolerate.
func (h *OverrideOwnershipCommandHandler) resolveOwner(ctx context.Context, memberCode string) (*kernel.UUID, error) {
	if memberCode == "" {
		return nil, nil
	}

	record, err := h.members.LookupByCode(ctx, memberCode)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !record.IsActive || record.IsDeleted {
		return nil, errs.NewValueIsInvalidError("newMemberCode")
	}

	return &record.ID, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
