package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Reason length bounds for ownership overrides. The reason is the only
// explanation an auditor will ever get, so a throwaway string is rejected.
const (
	OverrideReasonMinLength = 10
	OverrideReasonMaxLength = 500
)

var ErrOverrideOwnershipCommandIsNotConstructed = errors.New(
	"OverrideOwnershipCommand must be created via NewOverrideOwnershipCommand constructor",
)

// OverrideOwnershipCommand represents an admin request to rebind a parcel to
// a different member code. An unresolvable code turns the parcel into an
// orphan; it never silently guesses an owner.
type OverrideOwnershipCommand struct { //nolint:recvcheck //using for validation
	parcelID      kernel.UUID
	newMemberCode string
	adminID       kernel.UUID
	reason        string
	meta          audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewOverrideOwnershipCommand creates a command to override parcel ownership.
// Validates the parcel ID, the admin ID, and the reason length.
func NewOverrideOwnershipCommand(
	parcelID kernel.UUID,
	newMemberCode string,
	adminID kernel.UUID,
	reason string,
	meta audit.RequestMeta,
) (OverrideOwnershipCommand, error) {
	cmd := OverrideOwnershipCommand{
		newMemberCode: newMemberCode,
		meta:          meta,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setAdminID(adminID),
		cmd.setReason(reason),
	); err != nil {
		return OverrideOwnershipCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OverrideOwnershipCommand) Validate() error {
	return c.guard.Validate(ErrOverrideOwnershipCommandIsNotConstructed)
}

// ParcelID returns the parcel whose ownership changes.
func (c OverrideOwnershipCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// NewMemberCode returns the member code to rebind the parcel to.
func (c OverrideOwnershipCommand) NewMemberCode() string {
	return c.newMemberCode
}

// AdminID returns the administrator performing the override.
func (c OverrideOwnershipCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Reason returns the mandatory override justification.
func (c OverrideOwnershipCommand) Reason() string {
	return c.reason
}

// Meta returns the request metadata recorded on the audit entry.
func (c OverrideOwnershipCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *OverrideOwnershipCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *OverrideOwnershipCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}

func (c *OverrideOwnershipCommand) setReason(reason string) error {
	if len(reason) < OverrideReasonMinLength || len(reason) > OverrideReasonMaxLength {
		return errs.NewValueIsOutOfRangeError(
			"reason length", len(reason), OverrideReasonMinLength, OverrideReasonMaxLength,
		)
	}

	c.reason = reason
	return nil
}
