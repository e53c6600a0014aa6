package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hackpay/internal/apperr"
	"hackpay/internal/domain"
	"hackpay/internal/models"
	"hackpay/internal/reconcile"
	"hackpay/pkg/razorpay"

	"github.com/rs/zerolog"
)

// Store interfaces kept narrow so services are testable without a database.

type UserStore interface {
	GetByID(id uint) (*models.User, error)
}

type HackathonStore interface {
	GetByID(id uint) (*models.Hackathon, error)
}

type TransactionStore interface {
	Create(t *models.Transaction) error
	GetByOrderID(orderID string) (*models.Transaction, error)
	ExistsSuccessfulRegistration(userID, hackathonID uint) (bool, error)
}

type FailureStore interface {
	Record(f *models.ReconciliationFailure) error
}

type CreateOrderResult struct {
	OrderID       string `json:"order_id"`
	AmountPaise   int64  `json:"amount_paise"`
	Currency      string `json:"currency"`
	Receipt       string `json:"receipt"`
	TransactionID uint   `json:"transaction_id"`
}

type VerifyPaymentResult struct {
	TransactionID uint   `json:"transaction_id"`
	Status        string `json:"status"`
	PaymentID     string `json:"payment_id"`
	OrderID       string `json:"order_id"`
}

// PaymentService is the charge-side initiator: it creates processor orders,
// persists the pending ledger leg, and runs the synchronous verification
// path through the reconciliation engine.
type PaymentService struct {
	users        UserStore
	hackathons   HackathonStore
	transactions TransactionStore
	failures     FailureStore
	engine       *reconcile.Engine
	rzp          razorpay.Client
	keySecret    string
	log          zerolog.Logger
}

func NewPaymentService(
	users UserStore,
	hackathons HackathonStore,
	transactions TransactionStore,
	failures FailureStore,
	engine *reconcile.Engine,
	rzp razorpay.Client,
	keySecret string,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		users:        users,
		hackathons:   hackathons,
		transactions: transactions,
		failures:     failures,
		engine:       engine,
		rzp:          rzp,
		keySecret:    keySecret,
		log:          log,
	}
}

// CreateOrder creates a registration charge order at the processor and then
// persists the pending transaction. The external call goes first: a failed
// call leaves no local record, while a failed persist after a successful
// call is written to the dead-letter log and surfaced as
// reconciliation_required.
func (s *PaymentService) CreateOrder(ctx context.Context, userID, hackathonID uint) (*CreateOrderResult, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	hackathon, err := s.hackathons.GetByID(hackathonID)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "hackathon not found")
	}
	if hackathon.PricePaise <= 0 {
		return nil, apperr.New(apperr.KindValidation, "this is a free hackathon")
	}

	exists, err := s.transactions.ExistsSuccessfulRegistration(userID, hackathonID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "registration lookup failed", err)
	}
	if exists {
		return nil, apperr.New(apperr.KindConflict, "already registered for this hackathon")
	}

	receipt := fmt.Sprintf("hack_%d_user_%d_%d", hackathonID, userID, time.Now().UnixMilli())
	order, err := s.rzp.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   hackathon.PricePaise,
		Currency: hackathon.Currency,
		Receipt:  receipt,
		Notes: map[string]string{
			"hackathon_id": fmt.Sprintf("%d", hackathonID),
			"user_id":      fmt.Sprintf("%d", userID),
			"type":         domain.TxnTypeHackathonRegistration,
		},
		PaymentCapture: 1,
	})
	if err != nil {
		s.log.Error().Err(err).Uint("user_id", userID).Uint("hackathon_id", hackathonID).Msg("order creation failed")
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to create payment order", err)
	}

	orderID := order.ID
	meta, _ := json.Marshal(map[string]string{
		"hackathon_name": hackathon.Title,
		"user_email":     user.Email,
		"receipt":        receipt,
	})
	t := &models.Transaction{
		UserID:          userID,
		HackathonID:     &hackathonID,
		AmountPaise:     hackathon.PricePaise,
		Currency:        hackathon.Currency,
		Status:          domain.TxnStatusPending,
		Type:            domain.TxnTypeHackathonRegistration,
		RazorpayOrderID: &orderID,
		Metadata:        string(meta),
	}
	if err := s.transactions.Create(t); err != nil {
		s.recordFailure("order_create", orderID, t, err)
		return nil, apperr.Wrap(apperr.KindReconciliation, "order created but local record failed", err)
	}

	return &CreateOrderResult{
		OrderID:       order.ID,
		AmountPaise:   order.Amount,
		Currency:      order.Currency,
		Receipt:       order.Receipt,
		TransactionID: t.ID,
	}, nil
}

// VerifyPayment is the synchronous checkout verification: signature check,
// a status fetch from the processor, then the same transition path webhooks
// take, so the forward-only guard covers both routes.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*VerifyPaymentResult, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, apperr.New(apperr.KindValidation, "missing payment verification data")
	}
	if !razorpay.VerifyPaymentSignature(orderID, paymentID, signature, s.keySecret) {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid payment signature")
	}

	payment, err := s.rzp.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "payment lookup failed", err)
	}
	if payment.Status != "captured" && payment.Status != "authorized" {
		return nil, apperr.New(apperr.KindValidation, "payment not successful")
	}
	payment.OrderID = orderID

	_, err = s.engine.HandlePaymentEvent("payment."+payment.Status, *payment)
	if err != nil {
		if err == reconcile.ErrNotFound {
			return nil, apperr.New(apperr.KindNotFound, "transaction not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "payment verification failed", err)
	}

	t, err := s.transactions.GetByOrderID(orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "transaction lookup failed", err)
	}
	return &VerifyPaymentResult{
		TransactionID: t.ID,
		Status:        t.Status,
		PaymentID:     paymentID,
		OrderID:       orderID,
	}, nil
}

func (s *PaymentService) recordFailure(kind, externalID string, record interface{}, cause error) {
	payload, _ := json.Marshal(record)
	f := &models.ReconciliationFailure{
		Kind:       kind,
		ExternalID: externalID,
		Payload:    string(payload),
		Detail:     cause.Error(),
	}
	if err := s.failures.Record(f); err != nil {
		// Both the record and the dead-letter write failed; the log line is
		// the last durable trace an operator has.
		s.log.Error().Err(err).Str("kind", kind).Str("external_id", externalID).RawJSON("payload", payload).Msg("dead-letter write failed")
		return
	}
	s.log.Error().Err(cause).Str("kind", kind).Str("external_id", externalID).Msg("reconciliation required")
}
