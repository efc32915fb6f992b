package razorpay

import (
	"encoding/json"

	"github.com/justtry/crm/internal/entity"
)

type TransferInput struct {
	Amount        float64
	BankDetails   entity.BankDetails
	LeadID        string
	CustomerEmail string
}

// TransferResult mirrors the gateway contract: Success false with Error set is
// a business rejection; transport problems surface as a Go error instead.
type TransferResult struct {
	Success     bool
	ReferenceID string
	Error       string
	Raw         json.RawMessage
}

type contactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
	Type        string `json:"type"`
	ReferenceID string `json:"reference_id"`
}

type contactResponse struct {
	ID string `json:"id"`
}

type fundAccountRequest struct {
	ContactID   string      `json:"contact_id"`
	AccountType string      `json:"account_type"`
	BankAccount bankAccount `json:"bank_account"`
}

type bankAccount struct {
	Name          string `json:"name"`
	IFSC          string `json:"ifsc"`
	AccountNumber string `json:"account_number"`
}

type fundAccountResponse struct {
	ID string `json:"id"`
}

type payoutRequest struct {
	AccountNumber    string `json:"account_number"`
	FundAccountID    string `json:"fund_account_id"`
	Amount           int64  `json:"amount"` // paisa
	Currency         string `json:"currency"`
	Mode             string `json:"mode"`
	Purpose          string `json:"purpose"`
	QueueIfLowBalance bool  `json:"queue_if_low_balance"`
	ReferenceID      string `json:"reference_id"`
	Narration        string `json:"narration"`
}

type payoutResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	CreatedAt int64  `json:"created_at"`
	Narration string `json:"narration"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
		Reason      string `json:"reason"`
	} `json:"error"`
}
