package models

import (
	"encoding/json"
	"time"
)

// Transaction is one ledger leg: a registration charge (positive amount)
// or the negative leg paired with a Payout. Exactly one of RazorpayOrderID
// and RazorpayPayoutID identifies the leg at the processor; RazorpayPaymentID
// is set only once a charge is authorized or captured.
//
// Transactions are never deleted. Terminal statuses are append-only markers,
// so there is no soft-delete column.
type Transaction struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	HackathonID *uint  `gorm:"index" json:"hackathon_id,omitempty"`
	TeamID      *uint  `json:"team_id,omitempty"`
	AmountPaise int64  `gorm:"not null" json:"amount_paise"`
	Currency    string `gorm:"size:3;default:'INR'" json:"currency"`
	Status      string `gorm:"size:20;not null;index" json:"status"`
	Type        string `gorm:"size:32;not null" json:"type"`

	RazorpayOrderID   *string `gorm:"size:64;uniqueIndex" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string `gorm:"size:64;index" json:"razorpay_payment_id,omitempty"`
	RazorpayPayoutID  *string `gorm:"size:64;uniqueIndex" json:"razorpay_payout_id,omitempty"`
	RazorpaySignature string  `gorm:"size:128" json:"-"`

	// PaymentDetails is the processor-reported method metadata, stored as an
	// opaque JSON blob.
	PaymentDetails string `gorm:"type:text" json:"payment_details,omitempty"`
	Metadata       string `gorm:"type:text" json:"metadata,omitempty"`

	ErrorCode        string `gorm:"size:64" json:"error_code,omitempty"`
	ErrorDescription string `gorm:"size:255" json:"error_description,omitempty"`
	ErrorSource      string `gorm:"size:64" json:"error_source,omitempty"`
	ErrorReason      string `gorm:"size:64" json:"error_reason,omitempty"`
	ErrorStep        string `gorm:"size:64" json:"error_step,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// PaymentMethodDetails is the shape serialized into Transaction.PaymentDetails.
type PaymentMethodDetails struct {
	Method            string `json:"method,omitempty"`
	Bank              string `json:"bank,omitempty"`
	Wallet            string `json:"wallet,omitempty"`
	VPA               string `json:"vpa,omitempty"`
	CardID            string `json:"card_id,omitempty"`
	BankTransactionID string `json:"bank_transaction_id,omitempty"`
}

func (d PaymentMethodDetails) Encode() string {
	b, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return string(b)
}
