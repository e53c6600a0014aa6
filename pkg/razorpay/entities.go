package razorpay

// Order is the processor-side order created for a charge.
type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type OrderRequest struct {
	Amount         int64             `json:"amount"` // smallest currency unit
	Currency       string            `json:"currency"`
	Receipt        string            `json:"receipt"`
	Notes          map[string]string `json:"notes,omitempty"`
	PaymentCapture int               `json:"payment_capture"`
}

// PaymentEntity is the payment object carried in webhook payloads and
// returned by the payments fetch API.
type PaymentEntity struct {
	ID                string `json:"id"`
	OrderID           string `json:"order_id"`
	Status            string `json:"status"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	Method            string `json:"method"`
	Bank              string `json:"bank"`
	Wallet            string `json:"wallet"`
	VPA               string `json:"vpa"`
	CardID            string `json:"card_id"`
	BankTransactionID string `json:"bank_transaction_id"`
	ErrorCode         string `json:"error_code"`
	ErrorDescription  string `json:"error_description"`
	ErrorSource       string `json:"error_source"`
	ErrorReason       string `json:"error_reason"`
}

// PayoutEntity is the payout object carried in webhook payloads and
// returned by the payout create API.
type PayoutEntity struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Amount        int64          `json:"amount"`
	Currency      string         `json:"currency"`
	Mode          string         `json:"mode"`
	Purpose       string         `json:"purpose"`
	ReferenceID   string         `json:"reference_id"`
	UTR           string         `json:"utr"`
	FailureReason *PayoutFailure `json:"failure_reason,omitempty"`
}

type PayoutFailure struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type BankAccount struct {
	Name          string `json:"name"`
	IFSC          string `json:"ifsc"`
	AccountNumber string `json:"account_number"`
}

type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
	Type    string `json:"type"`
}

type FundAccount struct {
	AccountType string      `json:"account_type"`
	BankAccount BankAccount `json:"bank_account"`
	Contact     Contact     `json:"contact"`
}

type PayoutRequest struct {
	AccountNumber     string            `json:"account_number"`
	FundAccount       FundAccount       `json:"fund_account"`
	Amount            int64             `json:"amount"` // smallest currency unit
	Currency          string            `json:"currency"`
	Mode              string            `json:"mode"`
	Purpose           string            `json:"purpose"`
	QueueIfLowBalance bool              `json:"queue_if_low_balance"`
	ReferenceID       string            `json:"reference_id"`
	Narration         string            `json:"narration,omitempty"`
	Notes             map[string]string `json:"notes,omitempty"`
}
