package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justtry/crm/internal/entity"
)

func transferInput() TransferInput {
	return TransferInput{
		Amount: 500000,
		BankDetails: entity.BankDetails{
			AccountHolderName: "Ravi Kumar",
			AccountNumber:     "12345678901",
			IFSCCode:          "HDFC0001234",
		},
		LeadID:        "lead-1",
		CustomerEmail: "ravi@example.com",
	}
}

func TestTransferWithoutKeysUsesMockMode(t *testing.T) {
	c := NewClient("", "", "", "")

	result, err := c.Transfer(context.Background(), transferInput())

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.ReferenceID, "mock-"))
	assert.NotEmpty(t, result.Raw)
}

func TestTransferPayoutChain(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		user, _, _ := r.BasicAuth()
		assert.Equal(t, "key-id", user)

		switch r.URL.Path {
		case "/contacts":
			json.NewEncoder(w).Encode(map[string]string{"id": "cont_1"})
		case "/fund_accounts":
			json.NewEncoder(w).Encode(map[string]string{"id": "fa_1"})
		case "/payouts":
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			// 500000 rupees in paisa
			assert.Equal(t, float64(50000000), payload["amount"])
			assert.Equal(t, "INR", payload["currency"])
			assert.Equal(t, "IMPS", payload["mode"])
			json.NewEncoder(w).Encode(map[string]string{"id": "pout_1", "status": "processed"})
		}
	}))
	defer srv.Close()

	c := NewClient("key-id", "key-secret", "acc-1", srv.URL)

	result, err := c.Transfer(context.Background(), transferInput())

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "pout_1", result.ReferenceID)
	assert.Equal(t, []string{"/contacts", "/fund_accounts", "/payouts"}, paths)
}

func TestTransferRoundsFractionalRupeesToPaisa(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contacts":
			json.NewEncoder(w).Encode(map[string]string{"id": "cont_1"})
		case "/fund_accounts":
			json.NewEncoder(w).Encode(map[string]string{"id": "fa_1"})
		case "/payouts":
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			// 19.99 * 100 is 1998.9999... in float64; the payout must not
			// truncate the last paisa.
			assert.Equal(t, float64(1999), payload["amount"])
			json.NewEncoder(w).Encode(map[string]string{"id": "pout_1", "status": "processed"})
		}
	}))
	defer srv.Close()

	c := NewClient("key-id", "key-secret", "acc-1", srv.URL)

	input := transferInput()
	input.Amount = 19.99
	result, err := c.Transfer(context.Background(), input)

	assert.NoError(t, err)
	assert.True(t, result.Success)
}

func TestTransferPayoutRejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contacts":
			json.NewEncoder(w).Encode(map[string]string{"id": "cont_1"})
		case "/fund_accounts":
			json.NewEncoder(w).Encode(map[string]string{"id": "fa_1"})
		case "/payouts":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"description":"insufficient gateway balance"}}`))
		}
	}))
	defer srv.Close()

	c := NewClient("key-id", "key-secret", "acc-1", srv.URL)

	result, err := c.Transfer(context.Background(), transferInput())

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "insufficient gateway balance", result.Error)
	assert.NotEmpty(t, result.Raw)
}

func TestTransferContactFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("key-id", "key-secret", "acc-1", srv.URL)

	_, err := c.Transfer(context.Background(), transferInput())

	assert.Error(t, err)
}
