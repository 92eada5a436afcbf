package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
)

// MemberRecord is the directory's view of a registered member.
type MemberRecord struct {
	ID        kernel.UUID
	IsActive  bool
	IsDeleted bool
}

// MemberDirectory resolves member codes against the member registry and
// stores member preferences collected during delivery requests.
type MemberDirectory interface {
	// LookupByCode resolves a member code to a member record.
	// Returns an object-not-found error when no member carries the code.
	LookupByCode(ctx context.Context, memberCode string) (*MemberRecord, error)

	// SaveDefaultAddress stores the member's default delivery address when
	// the member asked for it to be remembered.
	SaveDefaultAddress(ctx context.Context, memberID kernel.UUID, address delivery.Address) error
}
