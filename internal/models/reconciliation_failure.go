package models

import "time"

// ReconciliationFailure is a dead-letter record for partial failures: the
// processor-side resource exists but the local write failed (or the reverse).
// Rows are written durably for operator follow-up and never dropped.
type ReconciliationFailure struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Kind       string     `gorm:"size:32;not null;index" json:"kind"` // order_create, payout_create
	ExternalID string     `gorm:"size:64;not null;index" json:"external_id"`
	Payload    string     `gorm:"type:text" json:"payload"`
	Detail     string     `gorm:"size:512" json:"detail"`
	Resolved   bool       `gorm:"not null;default:false;index" json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (ReconciliationFailure) TableName() string {
	return "reconciliation_failures"
}
