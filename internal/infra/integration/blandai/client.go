package blandai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultVoice = "e1289219-0ea2-4f22-a994-c542c2a48a0f"

// Client places automated voice calls through Bland AI. Unconfigured key means
// calling is disabled: PlaceCall reports a non-success without an error, which
// the coordinator treats as a soft warning.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.bland.ai"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) PlaceCall(ctx context.Context, input PlaceCallInput) (*PlaceCallOutput, error) {
	if c.apiKey == "" {
		log.Warn().Msg("bland AI key not configured, skipping call")
		return &PlaceCallOutput{Success: false, Message: "AI calling not configured"}, nil
	}

	phone := input.Phone
	if !strings.HasPrefix(phone, "+") {
		phone = "+91" + phone
	}

	payload := callRequest{
		PhoneNumber:           phone,
		Task:                  CallScript(input.ServiceType, input.Status, input.Name),
		Voice:                 defaultVoice,
		Record:                true,
		AnsweredByEnabled:     true,
		InterruptionThreshold: 500,
		MaxDuration:           12,
		Model:                 "base",
		Language:              "en",
		BackgroundTrack:       "none",
		Endpoint:              c.baseURL,
		VoicemailAction:       "hangup",
		JSONModeEnabled:       true,
		Metadata: map[string]string{
			"leadId":       input.LeadID,
			"serviceType":  input.ServiceType,
			"status":       input.Status,
			"customerName": input.Name,
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/calls", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bland AI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bland AI error (status %d): %s", resp.StatusCode, string(body))
	}

	var callData callResponse
	if err := json.NewDecoder(resp.Body).Decode(&callData); err != nil {
		return nil, fmt.Errorf("bland AI decode: %w", err)
	}

	callID := callData.CallID
	if callID == "" {
		callID = callData.ID
	}
	return &PlaceCallOutput{Success: true, CallID: callID}, nil
}

// CallScript builds the agent task per service type. Only the approval status
// of each pipeline gets the detailed script; anything else falls back to a
// generic callback prompt.
func CallScript(serviceType, status, name string) string {
	greeting := fmt.Sprintf("Hello %s! This is an automated call from JustTry CRM.", name)

	switch serviceType {
	case "Loan":
		if status == "Approved" {
			return greeting + " Great news! Your loan application has been approved. " +
				"I can help answer questions about next steps for disbursement, interest rates and terms, " +
				"documentation requirements, and your payment schedule. How can I assist you today?"
		}
	case "Investment":
		if status == "Activated" {
			return greeting + " Excellent news! Your investment account has been successfully activated. " +
				"I can help you with your portfolio, investment strategy, account management, and performance tracking. " +
				"What would you like to know about your investment account?"
		}
	case "Insurance":
		if status == "Policy Issued" {
			return greeting + " Wonderful news! Your insurance policy has been successfully issued and is now active. " +
				"I can provide information about policy details and coverage, premiums, the claim process, and renewals. " +
				"How can I help you with your new policy?"
		}
	}

	return fmt.Sprintf("%s We have an important update about your %s application. Please call us back at your convenience to discuss the details.",
		greeting, strings.ToLower(serviceType))
}
