package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrSoftDeleteParcelCommandIsNotConstructed = errors.New(
	"SoftDeleteParcelCommand must be created via NewSoftDeleteParcelCommand constructor",
)

// SoftDeleteParcelCommand represents an admin request to retire a parcel.
// History, exceptions, and deliveries stay behind for audit continuity.
type SoftDeleteParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	adminID  kernel.UUID
	meta     audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewSoftDeleteParcelCommand creates a command to soft-delete a parcel.
func NewSoftDeleteParcelCommand(
	parcelID kernel.UUID,
	adminID kernel.UUID,
	meta audit.RequestMeta,
) (SoftDeleteParcelCommand, error) {
	cmd := SoftDeleteParcelCommand{
		meta:  meta,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setAdminID(adminID),
	); err != nil {
		return SoftDeleteParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SoftDeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to retire.
func (c SoftDeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// AdminID returns the administrator performing the deletion.
func (c SoftDeleteParcelCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Meta returns the request metadata recorded on the audit entry.
func (c SoftDeleteParcelCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *SoftDeleteParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *SoftDeleteParcelCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}
