package reconcile

import (
	"errors"
	"time"

	"hackpay/internal/domain"
	"hackpay/internal/models"
	"hackpay/pkg/razorpay"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned by a Ledger when no record matches the external id.
var ErrNotFound = errors.New("reconcile: record not found")

// ErrSkipUpdate may be returned from an apply callback to abandon the update
// without error: the ledger rolls back having written nothing.
var ErrSkipUpdate = errors.New("reconcile: skip update")

// Ledger is the atomic read-modify-write surface the engine runs on. Each
// method locks the matching record(s) for the duration of apply; writes are
// all-or-nothing. Concurrent updates for the same external id serialize.
type Ledger interface {
	UpdateTransactionByOrderID(orderID string, apply func(*models.Transaction) error) error
	UpdatePayoutPairByPayoutID(payoutID string, apply func(*models.Payout, *models.Transaction) error) error
}

// Outcome describes what the engine did with an event.
type Outcome int

const (
	// OutcomeApplied means the event advanced at least one record.
	OutcomeApplied Outcome = iota
	// OutcomeReplayed means the event restated the stored status; the
	// overwrite was harmless and timestamps were left untouched.
	OutcomeReplayed
	// OutcomeIgnored means the event kind is unhandled or the transition
	// would regress the state machine.
	OutcomeIgnored
)

var paymentEventStatus = map[string]string{
	domain.EventPaymentAuthorized: domain.TxnStatusAuthorized,
	domain.EventPaymentCaptured:   domain.TxnStatusCaptured,
	domain.EventPaymentFailed:     domain.TxnStatusFailed,
}

var payoutEventStatus = map[string]string{
	domain.EventPayoutInitiated: domain.PayoutStatusProcessing,
	domain.EventPayoutProcessed: domain.PayoutStatusCompleted,
	domain.EventPayoutReversed:  domain.PayoutStatusFailed,
	domain.EventPayoutFailed:    domain.PayoutStatusFailed,
}

// Engine maps verified processor events onto legal state transitions.
// It owns no state of its own; all coordination lives in the Ledger.
type Engine struct {
	ledger Ledger
	log    zerolog.Logger
}

func NewEngine(ledger Ledger, log zerolog.Logger) *Engine {
	return &Engine{ledger: ledger, log: log}
}

// HandlePaymentEvent applies a verified payment event to the transaction
// identified by the entity's order id.
func (e *Engine) HandlePaymentEvent(kind string, p razorpay.PaymentEntity) (Outcome, error) {
	target, ok := paymentEventStatus[kind]
	if !ok {
		e.log.Info().Str("event", kind).Msg("ignoring unhandled payment event")
		return OutcomeIgnored, nil
	}
	outcome := OutcomeApplied
	err := e.ledger.UpdateTransactionByOrderID(p.OrderID, func(t *models.Transaction) error {
		if !TransactionCanAdvance(t.Status, target) {
			e.log.Warn().
				Str("event", kind).
				Str("order_id", p.OrderID).
				Str("current", t.Status).
				Str("target", target).
				Msg("ignoring state regression")
			outcome = OutcomeIgnored
			return ErrSkipUpdate
		}
		if t.Status == target {
			outcome = OutcomeReplayed
		}
		applyPaymentEvent(t, kind, target, p)
		return nil
	})
	if err != nil {
		return OutcomeIgnored, err
	}
	if outcome == OutcomeApplied {
		e.log.Info().Str("event", kind).Str("order_id", p.OrderID).Str("status", target).Msg("transaction reconciled")
	}
	return outcome, nil
}

// HandlePayoutEvent applies a verified payout event to the payout and its
// paired ledger transaction, atomically.
func (e *Engine) HandlePayoutEvent(kind string, p razorpay.PayoutEntity) (Outcome, error) {
	target, ok := payoutEventStatus[kind]
	if !ok {
		e.log.Info().Str("event", kind).Msg("ignoring unhandled payout event")
		return OutcomeIgnored, nil
	}
	outcome := OutcomeApplied
	err := e.ledger.UpdatePayoutPairByPayoutID(p.ID, func(po *models.Payout, t *models.Transaction) error {
		if !PayoutCanAdvance(po.Status, target) {
			e.log.Warn().
				Str("event", kind).
				Str("payout_id", p.ID).
				Str("current", po.Status).
				Str("target", target).
				Msg("ignoring state regression")
			outcome = OutcomeIgnored
			return ErrSkipUpdate
		}
		if po.Status == target {
			outcome = OutcomeReplayed
		}
		applyPayoutEvent(po, t, kind, target, p)
		return nil
	})
	if err != nil {
		return OutcomeIgnored, err
	}
	if outcome == OutcomeApplied {
		e.log.Info().Str("event", kind).Str("payout_id", p.ID).Str("status", target).Msg("payout reconciled")
	}
	return outcome, nil
}

func applyPaymentEvent(t *models.Transaction, kind, target string, p razorpay.PaymentEntity) {
	t.Status = target
	switch kind {
	case domain.EventPaymentAuthorized:
		paymentID := p.ID
		t.RazorpayPaymentID = &paymentID
		t.PaymentDetails = models.PaymentMethodDetails{
			Method: p.Method,
			Bank:   p.Bank,
			Wallet: p.Wallet,
			VPA:    p.VPA,
			CardID: p.CardID,
		}.Encode()
	case domain.EventPaymentCaptured:
		paymentID := p.ID
		t.RazorpayPaymentID = &paymentID
		t.PaymentDetails = models.PaymentMethodDetails{
			Method:            p.Method,
			Bank:              p.Bank,
			Wallet:            p.Wallet,
			VPA:               p.VPA,
			CardID:            p.CardID,
			BankTransactionID: p.BankTransactionID,
		}.Encode()
		if t.CompletedAt == nil {
			now := time.Now()
			t.CompletedAt = &now
		}
	case domain.EventPaymentFailed:
		t.ErrorCode = p.ErrorCode
		t.ErrorDescription = p.ErrorDescription
		t.ErrorSource = p.ErrorSource
		t.ErrorReason = p.ErrorReason
	}
}

func applyPayoutEvent(po *models.Payout, t *models.Transaction, kind, target string, p razorpay.PayoutEntity) {
	po.Status = target
	switch kind {
	case domain.EventPayoutInitiated:
		if po.ProcessedAt == nil {
			now := time.Now()
			po.ProcessedAt = &now
		}
		// The paired leg stays pending until the payout settles.
	case domain.EventPayoutProcessed:
		now := time.Now()
		if po.CompletedAt == nil {
			po.CompletedAt = &now
		}
		if TransactionCanAdvance(t.Status, domain.TxnStatusCaptured) {
			t.Status = domain.TxnStatusCaptured
			if t.CompletedAt == nil {
				t.CompletedAt = &now
			}
		}
	case domain.EventPayoutReversed, domain.EventPayoutFailed:
		code, description := "unknown", "Unknown error"
		if p.FailureReason != nil {
			if p.FailureReason.Code != "" {
				code = p.FailureReason.Code
			}
			if p.FailureReason.Description != "" {
				description = p.FailureReason.Description
			}
		}
		po.ErrorCode = code
		po.ErrorDescription = description
		po.ErrorSource = "razorpay"
		po.ErrorStep = "payout_processing"
		if TransactionCanAdvance(t.Status, domain.TxnStatusFailed) {
			t.Status = domain.TxnStatusFailed
			t.ErrorCode = code
			t.ErrorDescription = description
			t.ErrorSource = "razorpay"
			t.ErrorStep = "transaction_processing"
		}
	}
}
