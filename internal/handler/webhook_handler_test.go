package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hackpay/config"
	"hackpay/internal/domain"
	"hackpay/internal/models"
	"hackpay/internal/reconcile"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

type memLedger struct {
	txns    map[string]*models.Transaction
	payouts map[string]*models.Payout
	legs    map[string]*models.Transaction
	saveErr error
}

func newMemLedger() *memLedger {
	return &memLedger{
		txns:    make(map[string]*models.Transaction),
		payouts: make(map[string]*models.Payout),
		legs:    make(map[string]*models.Transaction),
	}
}

func (m *memLedger) UpdateTransactionByOrderID(orderID string, apply func(*models.Transaction) error) error {
	t, ok := m.txns[orderID]
	if !ok {
		return reconcile.ErrNotFound
	}
	working := *t
	if err := apply(&working); err != nil {
		if errors.Is(err, reconcile.ErrSkipUpdate) {
			return nil
		}
		return err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	*t = working
	return nil
}

func (m *memLedger) UpdatePayoutPairByPayoutID(payoutID string, apply func(*models.Payout, *models.Transaction) error) error {
	po, ok := m.payouts[payoutID]
	if !ok {
		return reconcile.ErrNotFound
	}
	leg, ok := m.legs[payoutID]
	if !ok {
		return reconcile.ErrNotFound
	}
	workingPayout := *po
	workingLeg := *leg
	if err := apply(&workingPayout, &workingLeg); err != nil {
		if errors.Is(err, reconcile.ErrSkipUpdate) {
			return nil
		}
		return err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	*po = workingPayout
	*leg = workingLeg
	return nil
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookTestRouter(ledger reconcile.Ledger, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Razorpay.WebhookSecret = secret
	engine := reconcile.NewEngine(ledger, zerolog.Nop())
	h := NewWebhookHandler(engine, nil, cfg, zerolog.Nop())
	r := gin.New()
	r.POST("/webhooks/payment", h.HandlePayment)
	r.POST("/webhooks/payout", h.HandlePayout)
	return r
}

func postWebhook(r *gin.Engine, path string, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedPendingTransaction(ledger *memLedger, orderID string) *models.Transaction {
	t := &models.Transaction{
		ID:              1,
		UserID:          7,
		AmountPaise:     50000,
		Status:          domain.TxnStatusPending,
		Type:            domain.TxnTypeHackathonRegistration,
		RazorpayOrderID: &orderID,
	}
	ledger.txns[orderID] = t
	return t
}

func TestWebhookPaymentCaptured(t *testing.T) {
	ledger := newMemLedger()
	txn := seedPendingTransaction(ledger, "order_1")
	r := newWebhookTestRouter(ledger, testSecret)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","method":"upi"}}}}`)
	w := postWebhook(r, "/webhooks/payment", body, signBody(body, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.TxnStatusCaptured, txn.Status)
	require.NotNil(t, txn.RazorpayPaymentID)
	assert.Equal(t, "pay_1", *txn.RazorpayPaymentID)
	require.NotNil(t, txn.CompletedAt)
}

func TestWebhookPaymentCapturedDeliveredTwice(t *testing.T) {
	ledger := newMemLedger()
	txn := seedPendingTransaction(ledger, "order_1")
	r := newWebhookTestRouter(ledger, testSecret)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","method":"upi"}}}}`)
	sig := signBody(body, testSecret)

	w := postWebhook(r, "/webhooks/payment", body, sig)
	require.Equal(t, http.StatusOK, w.Code)
	first := *txn.CompletedAt

	w = postWebhook(r, "/webhooks/payment", body, sig)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, txn.CompletedAt.Equal(first), "redelivery must not move completed_at")
}

func TestWebhookOutOfOrderAuthorizedAfterCaptured(t *testing.T) {
	ledger := newMemLedger()
	txn := seedPendingTransaction(ledger, "order_1")
	r := newWebhookTestRouter(ledger, testSecret)

	captured := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	w := postWebhook(r, "/webhooks/payment", captured, signBody(captured, testSecret))
	require.Equal(t, http.StatusOK, w.Code)

	authorized := []byte(`{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	w = postWebhook(r, "/webhooks/payment", authorized, signBody(authorized, testSecret))
	assert.Equal(t, http.StatusOK, w.Code, "regression is ignored, not an error")
	assert.Equal(t, domain.TxnStatusCaptured, txn.Status)
}

func TestWebhookBadSignature(t *testing.T) {
	ledger := newMemLedger()
	txn := seedPendingTransaction(ledger, "order_1")
	r := newWebhookTestRouter(ledger, testSecret)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	w := postWebhook(r, "/webhooks/payment", body, signBody(body, "whsec_other"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.TxnStatusPending, txn.Status, "unverified events must never reach the engine")
}

func TestWebhookNoSecretConfigured(t *testing.T) {
	r := newWebhookTestRouter(newMemLedger(), "")
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	w := postWebhook(r, "/webhooks/payment", body, signBody(body, testSecret))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhookUnknownOrder(t *testing.T) {
	r := newWebhookTestRouter(newMemLedger(), testSecret)
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_missing"}}}}`)
	w := postWebhook(r, "/webhooks/payment", body, signBody(body, testSecret))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookMissingEntity(t *testing.T) {
	r := newWebhookTestRouter(newMemLedger(), testSecret)
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	w := postWebhook(r, "/webhooks/payment", body, signBody(body, testSecret))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookUnhandledEventReturnsOK(t *testing.T) {
	ledger := newMemLedger()
	txn := seedPendingTransaction(ledger, "order_1")
	r := newWebhookTestRouter(ledger, testSecret)

	body := []byte(`{"event":"payment.downtime.started","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	w := postWebhook(r, "/webhooks/payment", body, signBody(body, testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.TxnStatusPending, txn.Status)
}

func TestWebhookPersistenceFailure(t *testing.T) {
	ledger := newMemLedger()
	seedPendingTransaction(ledger, "order_1")
	ledger.saveErr = errors.New("connection reset")
	r := newWebhookTestRouter(ledger, testSecret)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	w := postWebhook(r, "/webhooks/payment", body, signBody(body, testSecret))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhookPayoutFailed(t *testing.T) {
	ledger := newMemLedger()
	payoutID := "pout_1"
	po := &models.Payout{ID: 3, Status: domain.PayoutStatusProcessing, RazorpayPayoutID: &payoutID}
	leg := &models.Transaction{ID: 9, Status: domain.TxnStatusPending, Type: domain.TxnTypePayout, RazorpayPayoutID: &payoutID}
	ledger.payouts[payoutID] = po
	ledger.legs[payoutID] = leg
	r := newWebhookTestRouter(ledger, testSecret)

	body := []byte(`{"event":"payout.failed","payload":{"payout":{"entity":{"id":"pout_1","failure_reason":{"code":"beneficiary_blocked","description":"Account frozen"}}}}}`)
	w := postWebhook(r, "/webhooks/payout", body, signBody(body, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PayoutStatusFailed, po.Status)
	assert.Equal(t, domain.TxnStatusFailed, leg.Status)
	assert.Equal(t, po.ErrorCode, leg.ErrorCode)
}

func TestWebhookPayoutUnknownID(t *testing.T) {
	r := newWebhookTestRouter(newMemLedger(), testSecret)
	body := []byte(`{"event":"payout.processed","payload":{"payout":{"entity":{"id":"pout_missing"}}}}`)
	w := postWebhook(r, "/webhooks/payout", body, signBody(body, testSecret))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
