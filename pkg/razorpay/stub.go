package razorpay

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// StubClient is a no-op client for development and tests. It fabricates
// processor ids and records the last requests it saw.
type StubClient struct {
	seq uint64

	// Overridable failure injection.
	OrderErr  error
	PayoutErr error

	LastOrderRequest  *OrderRequest
	LastPayoutRequest *PayoutRequest
	Payments          map[string]*PaymentEntity
}

func NewStubClient() *StubClient {
	return &StubClient{Payments: make(map[string]*PaymentEntity)}
}

func (s *StubClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if s.OrderErr != nil {
		return nil, s.OrderErr
	}
	s.LastOrderRequest = &req
	return &Order{
		ID:        fmt.Sprintf("order_stub%d", atomic.AddUint64(&s.seq, 1)),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Receipt:   req.Receipt,
		Status:    "created",
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (s *StubClient) CreatePayout(ctx context.Context, req PayoutRequest) (*PayoutEntity, error) {
	if s.PayoutErr != nil {
		return nil, s.PayoutErr
	}
	s.LastPayoutRequest = &req
	return &PayoutEntity{
		ID:          fmt.Sprintf("pout_stub%d", atomic.AddUint64(&s.seq, 1)),
		Status:      "queued",
		Amount:      req.Amount,
		Currency:    req.Currency,
		Mode:        req.Mode,
		Purpose:     req.Purpose,
		ReferenceID: req.ReferenceID,
	}, nil
}

func (s *StubClient) FetchPayment(ctx context.Context, paymentID string) (*PaymentEntity, error) {
	if p, ok := s.Payments[paymentID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("payment %s not found", paymentID)
}
