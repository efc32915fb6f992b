package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client executes INR bank payouts via RazorpayX: contact, then fund account,
// then payout (IMPS). Without API keys it runs in mock mode and reports every
// transfer as processed, so the rest of the flow stays testable.
type Client struct {
	baseURL       string
	keyID         string
	keySecret     string
	accountNumber string
	http          *http.Client
}

func NewClient(keyID, keySecret, accountNumber, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return &Client{
		baseURL:       baseURL,
		keyID:         keyID,
		keySecret:     keySecret,
		accountNumber: accountNumber,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) configured() bool {
	return c.keyID != "" && c.keySecret != ""
}

func (c *Client) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if !c.configured() {
		log.Warn().Msg("razorpay keys not configured, using mock disbursement")
		return c.mockTransfer(input), nil
	}

	contactID, err := c.createContact(ctx, input)
	if err != nil {
		return nil, err
	}

	fundAccountID, err := c.createFundAccount(ctx, contactID, input)
	if err != nil {
		return nil, err
	}

	return c.createPayout(ctx, fundAccountID, input)
}

func (c *Client) createContact(ctx context.Context, input TransferInput) (string, error) {
	payload := contactRequest{
		Name:        input.BankDetails.AccountHolderName,
		Email:       input.CustomerEmail,
		Contact:     "9999999999", // gateway requires a phone; leads keep theirs off the payout path
		Type:        "customer",
		ReferenceID: input.LeadID,
	}

	var resp contactResponse
	if err := c.post(ctx, "/contacts", payload, &resp); err != nil {
		return "", fmt.Errorf("razorpay contact: %w", err)
	}
	return resp.ID, nil
}

func (c *Client) createFundAccount(ctx context.Context, contactID string, input TransferInput) (string, error) {
	payload := fundAccountRequest{
		ContactID:   contactID,
		AccountType: "bank_account",
		BankAccount: bankAccount{
			Name:          input.BankDetails.AccountHolderName,
			IFSC:          input.BankDetails.IFSCCode,
			AccountNumber: input.BankDetails.AccountNumber,
		},
	}

	var resp fundAccountResponse
	if err := c.post(ctx, "/fund_accounts", payload, &resp); err != nil {
		return "", fmt.Errorf("razorpay fund account: %w", err)
	}
	return resp.ID, nil
}

func (c *Client) createPayout(ctx context.Context, fundAccountID string, input TransferInput) (*TransferResult, error) {
	payload := payoutRequest{
		AccountNumber:     c.accountNumber,
		FundAccountID:     fundAccountID,
		Amount:            int64(math.Round(input.Amount * 100)), // rupees to paisa
		Currency:          "INR",
		Mode:              "IMPS",
		Purpose:           "payout",
		QueueIfLowBalance: true,
		ReferenceID:       input.LeadID,
		Narration:         "Loan disbursement for Lead " + input.LeadID,
	}

	body, status, err := c.postRaw(ctx, "/payouts", payload)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		// Gateway rejected the payout; hand back the reason and the raw body
		// so the failure is durable and inspectable.
		var apiErr apiError
		reason := fmt.Sprintf("razorpay rejected payout (status %d)", status)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			reason = apiErr.Error.Description
		}
		return &TransferResult{Success: false, Error: reason, Raw: body}, nil
	}

	var resp payoutResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("razorpay payout decode: %w", err)
	}

	return &TransferResult{Success: true, ReferenceID: resp.ID, Raw: body}, nil
}

func (c *Client) mockTransfer(input TransferInput) *TransferResult {
	ref := fmt.Sprintf("mock-%d", time.Now().UnixNano())
	raw, _ := json.Marshal(map[string]interface{}{
		"id":          ref,
		"status":      "processed",
		"amount":      input.Amount,
		"currency":    "INR",
		"created_at":  time.Now().Unix(),
		"description": "Loan disbursement for Lead " + input.LeadID,
	})
	return &TransferResult{Success: true, ReferenceID: ref, Raw: raw}
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, status, err := c.postRaw(ctx, path, payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		log.Error().Int("status", status).Str("path", path).Bytes("body", body).Msg("razorpay API error")
		return fmt.Errorf("razorpay API error (status %d)", status)
	}
	return json.Unmarshal(body, out)
}

func (c *Client) postRaw(ctx context.Context, path string, payload interface{}) ([]byte, int, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, 0, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("razorpay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
