package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.razorpay.com/v1"

// Client is the synchronous request/response surface of the processor.
// The reconciliation core never polls; everything asynchronous arrives
// through webhooks.
type Client interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	CreatePayout(ctx context.Context, req PayoutRequest) (*PayoutEntity, error)
	FetchPayment(ctx context.Context, paymentID string) (*PaymentEntity, error)
}

// APIClient talks to the Razorpay REST API using basic auth.
type APIClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewAPIClient(baseURL, keyID, keySecret string) *APIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *APIClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &out, nil
}

func (c *APIClient) CreatePayout(ctx context.Context, req PayoutRequest) (*PayoutEntity, error) {
	var out PayoutEntity
	if err := c.do(ctx, http.MethodPost, "/payouts", req, &out); err != nil {
		return nil, fmt.Errorf("create payout: %w", err)
	}
	return &out, nil
}

func (c *APIClient) FetchPayment(ctx context.Context, paymentID string) (*PaymentEntity, error) {
	var out PaymentEntity
	if err := c.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch payment: %w", err)
	}
	return &out, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(bodyBytes)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("razorpay api: %d %s", resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}
