package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrIntakeParcelCommandIsNotConstructed = errors.New(
		"IntakeParcelCommand must be created via NewIntakeParcelCommand constructor",
	)
	ErrTrackingCodeIsRequired = errors.New("tracking code is required")
)

// IntakeParcelCommand represents a request to register an arriving parcel.
// The member code is the code written on the parcel; it may fail to resolve
// to a registered member, in which case the parcel is taken in as an orphan.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	weight, _ := kernel.NewWeight(2.5)
//	cmd, err := NewIntakeParcelCommand(parcelID, "TRK-001", "M-7731", weight, "fragile", staffID, "staff", meta)
//	if err != nil {
//	    return fmt.Errorf("invalid intake data: %w", err)
//	}
//
//	handler := NewIntakeParcelCommandHandler(uowFactory, members, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to intake parcel: %w", err)
//	}
type IntakeParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID     kernel.UUID
	trackingCode string
	memberCode   string
	weight       kernel.Weight
	description  string
	actorID      kernel.UUID
	actorRole    string
	meta         audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewIntakeParcelCommand creates a command to register an arriving parcel.
// Validates that the parcel ID, tracking code, weight, and actor ID are set.
// The member code may be empty; an empty code never resolves to an owner.
func NewIntakeParcelCommand(
	parcelID kernel.UUID,
	trackingCode string,
	memberCode string,
	weight kernel.Weight,
	description string,
	actorID kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (IntakeParcelCommand, error) {
	cmd := IntakeParcelCommand{
		memberCode:  memberCode,
		description: description,
		actorRole:   actorRole,
		meta:        meta,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setTrackingCode(trackingCode),
		cmd.setWeight(weight),
		cmd.setActorID(actorID),
	); err != nil {
		return IntakeParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIntakeParcelCommandIsNotConstructed if validation fails.
func (c IntakeParcelCommand) Validate() error {
	return c.guard.Validate(ErrIntakeParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier assigned to the new parcel.
func (c IntakeParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// TrackingCode returns the external tracking code.
func (c IntakeParcelCommand) TrackingCode() string {
	return c.trackingCode
}

// MemberCode returns the member code written on the parcel.
func (c IntakeParcelCommand) MemberCode() string {
	return c.memberCode
}

// Weight returns the parcel weight measured at intake.
func (c IntakeParcelCommand) Weight() kernel.Weight {
	return c.weight
}

// Description returns the free-form intake notes.
func (c IntakeParcelCommand) Description() string {
	return c.description
}

// ActorID returns the staff member performing the intake.
func (c IntakeParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c IntakeParcelCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c IntakeParcelCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *IntakeParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *IntakeParcelCommand) setTrackingCode(trackingCode string) error {
	if trackingCode == "" {
		return ErrTrackingCodeIsRequired
	}

	c.trackingCode = trackingCode
	return nil
}

func (c *IntakeParcelCommand) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}

	c.weight = weight
	return nil
}

func (c *IntakeParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
