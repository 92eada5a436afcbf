package memberrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMemberDirectory implements MemberDirectory using GORM.
type GormMemberDirectory struct {
	db *gorm.DB
}

// NewGormMemberDirectory creates a new GORM member directory.
func NewGormMemberDirectory(db *gorm.DB) *GormMemberDirectory {
	return &GormMemberDirectory{db: db}
}

// LookupByCode resolves a member code to a member record. The record carries
// the active and deleted flags; callers decide what an unusable member means
// for their operation.
func (d *GormMemberDirectory) LookupByCode(ctx context.Context, memberCode string) (*ports.MemberRecord, error) {
	var dto MemberDTO
	if err := d.db.WithContext(ctx).First(&dto, "member_code = ?", memberCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("member", memberCode)
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.MemberRecord{
		ID:        id,
		IsActive:  dto.IsActive,
		IsDeleted: dto.IsDeleted,
	}, nil
}

// SaveDefaultAddress stores the member's default delivery address.
func (d *GormMemberDirectory) SaveDefaultAddress(
	ctx context.Context,
	memberID kernel.UUID,
	address delivery.Address,
) error {
	if err := memberID.Validate(); err != nil {
		return err
	}
	if err := address.Validate(); err != nil {
		return err
	}

	result := d.db.WithContext(ctx).
		Model(&MemberDTO{}).
		Where("id = ?", memberID.Bytes()).
		Updates(map[string]any{
			"default_street":      address.Street(),
			"default_city":        address.City(),
			"default_postal_code": address.PostalCode(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("member", memberID.String())
	}

	return nil
}
