package models

import (
	"time"

	"gorm.io/gorm"
)

// BankDetail is a user's payment destination. A user may hold several, but
// at most one primary; that constraint is enforced transactionally in the
// repository since MySQL has no partial unique indexes.
type BankDetail struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	AccountHolderName string         `gorm:"size:100;not null" json:"account_holder_name"`
	AccountNumber     string         `gorm:"size:34;not null;index" json:"account_number"`
	IFSCCode          string         `gorm:"size:11;not null" json:"ifsc_code"`
	BankName          string         `gorm:"size:100;not null" json:"bank_name"`
	Branch            string         `gorm:"size:100" json:"branch,omitempty"`
	IsPrimary         bool           `gorm:"not null;default:false" json:"is_primary"`
	IsVerified        bool           `gorm:"not null;default:false" json:"is_verified"`
	VerifiedAt        *time.Time     `json:"verified_at,omitempty"`
	Metadata          string         `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (BankDetail) TableName() string {
	return "bank_details"
}
