package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateNovypayPayment_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/combined/", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body NovypayPaymentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 9.99, body.Amount)
		assert.Equal(t, "USDC", body.TokenType)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"reference":    "novy_ref_123",
			"redirect_url": "https://pay.novypay.com/novy_ref_123",
		})
	}))
	defer server.Close()
	t.Setenv("NOVYPAY_API_KEY", "test-key")
	t.Setenv("NOVYPAY_API_URL", server.URL)

	resp, err := CreateNovypayPayment(NovypayPaymentRequest{
		Amount:    9.99,
		Currency:  "USD",
		TokenType: "USDC",
	})

	assert.NoError(t, err)
	assert.Equal(t, "novy_ref_123", resp.Reference)
	assert.Equal(t, "https://pay.novypay.com/novy_ref_123", resp.RedirectURL)
}

func TestCreateNovypayPayment_MissingAPIKey(t *testing.T) {
	t.Setenv("NOVYPAY_API_KEY", "")

	_, err := CreateNovypayPayment(NovypayPaymentRequest{Amount: 9.99})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "NOVYPAY_API_KEY")
}

func TestCreateNovypayPayment_EmptyReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"reference": ""})
	}))
	defer server.Close()
	t.Setenv("NOVYPAY_API_KEY", "test-key")
	t.Setenv("NOVYPAY_API_URL", server.URL)

	_, err := CreateNovypayPayment(NovypayPaymentRequest{Amount: 9.99})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty payment reference")
}

func TestCreateNovypayPayment_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()
	t.Setenv("NOVYPAY_API_KEY", "bad-key")
	t.Setenv("NOVYPAY_API_URL", server.URL)

	_, err := CreateNovypayPayment(NovypayPaymentRequest{Amount: 9.99})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestVerifyNovypayPayment_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/payments/verify/novy_ref_123", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment_status": "success",
			"amount":         9.99,
			"currency":       "USD",
			"token_type":     "USDC",
			"reference":      "novy_ref_123",
		})
	}))
	defer server.Close()
	t.Setenv("NOVYPAY_API_KEY", "test-key")
	t.Setenv("NOVYPAY_API_URL", server.URL)

	resp, err := VerifyNovypayPayment("novy_ref_123")

	assert.NoError(t, err)
	assert.Equal(t, "success", resp.PaymentStatus)
	assert.Equal(t, 9.99, resp.Amount)
}

func TestVerifyNovypayPayment_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"unknown reference"}`, http.StatusNotFound)
	}))
	defer server.Close()
	t.Setenv("NOVYPAY_API_KEY", "test-key")
	t.Setenv("NOVYPAY_API_URL", server.URL)

	_, err := VerifyNovypayPayment("missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
}
