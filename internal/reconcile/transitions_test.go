package reconcile

import (
	"testing"

	"hackpay/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTransactionCanAdvance(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    bool
	}{
		{"pending to authorized", domain.TxnStatusPending, domain.TxnStatusAuthorized, true},
		{"pending to captured skips authorized", domain.TxnStatusPending, domain.TxnStatusCaptured, true},
		{"pending to failed", domain.TxnStatusPending, domain.TxnStatusFailed, true},
		{"authorized to captured", domain.TxnStatusAuthorized, domain.TxnStatusCaptured, true},
		{"authorized to failed", domain.TxnStatusAuthorized, domain.TxnStatusFailed, true},
		{"captured to refunded", domain.TxnStatusCaptured, domain.TxnStatusRefunded, true},
		{"captured to disputed", domain.TxnStatusCaptured, domain.TxnStatusDisputed, true},
		{"replay same status", domain.TxnStatusCaptured, domain.TxnStatusCaptured, true},
		{"captured back to authorized", domain.TxnStatusCaptured, domain.TxnStatusAuthorized, false},
		{"captured to failed", domain.TxnStatusCaptured, domain.TxnStatusFailed, false},
		{"captured back to pending", domain.TxnStatusCaptured, domain.TxnStatusPending, false},
		{"failed is terminal", domain.TxnStatusFailed, domain.TxnStatusCaptured, false},
		{"refunded is terminal", domain.TxnStatusRefunded, domain.TxnStatusCaptured, false},
		{"authorized back to pending", domain.TxnStatusAuthorized, domain.TxnStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransactionCanAdvance(tt.current, tt.target))
		})
	}
}

func TestPayoutCanAdvance(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    bool
	}{
		{"pending to processing", domain.PayoutStatusPending, domain.PayoutStatusProcessing, true},
		{"pending to completed skips processing", domain.PayoutStatusPending, domain.PayoutStatusCompleted, true},
		{"pending to failed", domain.PayoutStatusPending, domain.PayoutStatusFailed, true},
		{"processing to completed", domain.PayoutStatusProcessing, domain.PayoutStatusCompleted, true},
		{"processing to failed", domain.PayoutStatusProcessing, domain.PayoutStatusFailed, true},
		{"replay same status", domain.PayoutStatusProcessing, domain.PayoutStatusProcessing, true},
		{"completed back to processing", domain.PayoutStatusCompleted, domain.PayoutStatusProcessing, false},
		{"completed to failed", domain.PayoutStatusCompleted, domain.PayoutStatusFailed, false},
		{"failed is terminal", domain.PayoutStatusFailed, domain.PayoutStatusCompleted, false},
		{"processing back to pending", domain.PayoutStatusProcessing, domain.PayoutStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PayoutCanAdvance(tt.current, tt.target))
		})
	}
}
