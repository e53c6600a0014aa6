package service

import (
	"context"
	"errors"
	"testing"

	"hackpay/internal/apperr"
	"hackpay/internal/domain"
	"hackpay/internal/models"
	"hackpay/pkg/razorpay"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users map[uint]*models.User
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

type fakeHackathonStore struct {
	hackathons map[uint]*models.Hackathon
}

func (f *fakeHackathonStore) GetByID(id uint) (*models.Hackathon, error) {
	h, ok := f.hackathons[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return h, nil
}

type fakeTransactionStore struct {
	created    []*models.Transaction
	registered bool
	createErr  error
}

func (f *fakeTransactionStore) Create(t *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = uint(len(f.created) + 1)
	f.created = append(f.created, t)
	return nil
}

func (f *fakeTransactionStore) GetByOrderID(orderID string) (*models.Transaction, error) {
	for _, t := range f.created {
		if t.RazorpayOrderID != nil && *t.RazorpayOrderID == orderID {
			return t, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeTransactionStore) ExistsSuccessfulRegistration(userID, hackathonID uint) (bool, error) {
	return f.registered, nil
}

type fakeFailureStore struct {
	recorded []*models.ReconciliationFailure
}

func (f *fakeFailureStore) Record(r *models.ReconciliationFailure) error {
	f.recorded = append(f.recorded, r)
	return nil
}

func newPaymentFixture() (*PaymentService, *fakeTransactionStore, *fakeFailureStore, *razorpay.StubClient) {
	users := &fakeUserStore{users: map[uint]*models.User{
		7: {ID: 7, Name: "Asha", Email: "asha@example.com"},
	}}
	hackathons := &fakeHackathonStore{hackathons: map[uint]*models.Hackathon{
		2: {ID: 2, Title: "HackNight", PricePaise: 50000, Currency: "INR"},
	}}
	txns := &fakeTransactionStore{}
	failures := &fakeFailureStore{}
	stub := razorpay.NewStubClient()
	svc := NewPaymentService(users, hackathons, txns, failures, nil, stub, "key_secret", zerolog.Nop())
	return svc, txns, failures, stub
}

func TestCreateOrderPersistsPendingTransaction(t *testing.T) {
	svc, txns, _, stub := newPaymentFixture()

	result, err := svc.CreateOrder(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderID)
	assert.Equal(t, int64(50000), result.AmountPaise)

	require.Len(t, txns.created, 1)
	created := txns.created[0]
	assert.Equal(t, domain.TxnStatusPending, created.Status)
	assert.Equal(t, domain.TxnTypeHackathonRegistration, created.Type)
	assert.Equal(t, int64(50000), created.AmountPaise)
	require.NotNil(t, created.RazorpayOrderID)
	assert.Equal(t, result.OrderID, *created.RazorpayOrderID)
	require.NotNil(t, stub.LastOrderRequest)
	assert.Equal(t, int64(50000), stub.LastOrderRequest.Amount)
}

func TestCreateOrderDuplicateRegistrationRejected(t *testing.T) {
	svc, txns, _, _ := newPaymentFixture()
	txns.registered = true

	_, err := svc.CreateOrder(context.Background(), 7, 2)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Empty(t, txns.created, "no record may be created for a rejected order")
}

func TestCreateOrderFreeHackathonRejected(t *testing.T) {
	svc, txns, _, _ := newPaymentFixture()
	svcHackathons := &fakeHackathonStore{hackathons: map[uint]*models.Hackathon{
		3: {ID: 3, Title: "FreeJam", PricePaise: 0, Currency: "INR"},
	}}
	svc.hackathons = svcHackathons

	_, err := svc.CreateOrder(context.Background(), 7, 3)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, txns.created)
}

func TestCreateOrderExternalFailureLeavesNoRecord(t *testing.T) {
	svc, txns, failures, stub := newPaymentFixture()
	stub.OrderErr = errors.New("gateway timeout")

	_, err := svc.CreateOrder(context.Background(), 7, 2)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))
	assert.Empty(t, txns.created, "fail before persist: no orphan records")
	assert.Empty(t, failures.recorded)
}

func TestCreateOrderPersistFailureDeadLetters(t *testing.T) {
	svc, txns, failures, _ := newPaymentFixture()
	txns.createErr = errors.New("disk full")

	_, err := svc.CreateOrder(context.Background(), 7, 2)
	require.Error(t, err)
	assert.Equal(t, apperr.KindReconciliation, apperr.KindOf(err))
	require.Len(t, failures.recorded, 1)
	assert.Equal(t, "order_create", failures.recorded[0].Kind)
	assert.NotEmpty(t, failures.recorded[0].ExternalID)
	assert.NotEmpty(t, failures.recorded[0].Payload)
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()
	_, err := svc.VerifyPayment(context.Background(), "order_1", "", "sig")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()
	_, err := svc.VerifyPayment(context.Background(), "order_1", "pay_1", "deadbeef")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
