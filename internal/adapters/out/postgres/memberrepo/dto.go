// Package memberrepo implements the member directory against the members
// table. The directory resolves member codes during intake and ownership
// changes and stores the default delivery address a member asks to keep.
package memberrepo

import (
	"github.com/google/uuid"
)

// MemberDTO represents the directory's view of a registered member.
// Default address columns are null until the member saves one.
type MemberDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	MemberCode        string    `gorm:"type:varchar(32);uniqueIndex"`
	IsActive          bool
	IsDeleted         bool
	DefaultStreet     *string `gorm:"type:varchar(255)"`
	DefaultCity       *string `gorm:"type:varchar(128)"`
	DefaultPostalCode *string `gorm:"type:varchar(32)"`
}

// TableName specifies the database table name for members.
func (MemberDTO) TableName() string {
	return "members"
}
