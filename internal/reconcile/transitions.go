package reconcile

import "hackpay/internal/domain"

// The two state machines share a shape: forward-only edges plus a
// same-status self loop so that redelivered events are harmless. An event
// whose implied status has no edge from the current status is a regression
// and must be ignored, never applied.

var txnNext = map[string]map[string]bool{
	domain.TxnStatusPending: {
		domain.TxnStatusAuthorized: true,
		domain.TxnStatusCaptured:   true,
		domain.TxnStatusFailed:     true,
	},
	domain.TxnStatusAuthorized: {
		domain.TxnStatusCaptured: true,
		domain.TxnStatusFailed:   true,
	},
	domain.TxnStatusCaptured: {
		domain.TxnStatusRefunded: true,
		domain.TxnStatusDisputed: true,
	},
}

var payoutNext = map[string]map[string]bool{
	domain.PayoutStatusPending: {
		domain.PayoutStatusProcessing: true,
		domain.PayoutStatusCompleted:  true,
		domain.PayoutStatusFailed:     true,
	},
	domain.PayoutStatusProcessing: {
		domain.PayoutStatusCompleted: true,
		domain.PayoutStatusFailed:    true,
	},
}

// TransactionCanAdvance reports whether a transaction may move from current
// to target. Re-applying the current status is allowed (idempotent replay).
func TransactionCanAdvance(current, target string) bool {
	if current == target {
		return true
	}
	return txnNext[current][target]
}

// PayoutCanAdvance is the payout-side counterpart of TransactionCanAdvance.
func PayoutCanAdvance(current, target string) bool {
	if current == target {
		return true
	}
	return payoutNext[current][target]
}
