package models

import (
	"time"
)

// Payout is an outbound disbursement to a team's designated payee. It owns
// exactly one paired Transaction (the negative ledger leg) created in the
// same atomic unit; the pair is linked by RazorpayPayoutID on both records.
//
// The bank destination is snapshotted at creation time so the payout always
// executes against the details approved when it was created.
type Payout struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	HackathonID uint   `gorm:"not null;index" json:"hackathon_id"`
	TeamID      uint   `gorm:"not null;index" json:"team_id"`
	AmountPaise int64  `gorm:"not null" json:"amount_paise"`
	Currency    string `gorm:"size:3;default:'INR'" json:"currency"`
	Status      string `gorm:"size:20;not null;index" json:"status"`
	Type        string `gorm:"size:20;not null" json:"type"`

	RazorpayPayoutID *string `gorm:"size:64;uniqueIndex" json:"razorpay_payout_id,omitempty"`

	// Destination snapshot, captured at creation.
	AccountHolderName string `gorm:"size:100" json:"account_holder_name"`
	AccountNumber     string `gorm:"size:34" json:"account_number"`
	IFSCCode          string `gorm:"size:11" json:"ifsc_code"`
	Contact           string `gorm:"size:20" json:"contact,omitempty"`
	Email             string `gorm:"size:255" json:"email,omitempty"`

	Metadata  string `gorm:"type:text" json:"metadata,omitempty"`
	CreatedBy uint   `gorm:"not null" json:"created_by"`

	ErrorCode        string `gorm:"size:64" json:"error_code,omitempty"`
	ErrorDescription string `gorm:"size:255" json:"error_description,omitempty"`
	ErrorSource      string `gorm:"size:64" json:"error_source,omitempty"`
	ErrorStep        string `gorm:"size:64" json:"error_step,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (Payout) TableName() string {
	return "payouts"
}
