package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var (
	novypayAPIKeyEnv  = "NOVYPAY_API_KEY"
	novypayBaseURLEnv = "NOVYPAY_API_URL"
	novypayDefaultURL = "https://api.novypay.com"

	novypayClient = &http.Client{Timeout: 15 * time.Second}
)

// NovypayPaymentRequest is the payload for POST /payments/combined/
type NovypayPaymentRequest struct {
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	TokenType        string  `json:"token_type"`
	Email            string  `json:"email"`
	FullName         string  `json:"fullname"`
	PhoneCountryCode string  `json:"phone_country_code"`
	PhoneNumber      string  `json:"phone_number"`
	AddressLine1     string  `json:"address_line1"`
	City             string  `json:"city"`
	Country          string  `json:"country"`
}

type NovypayPaymentResponse struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
}

type NovypayVerifyResponse struct {
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	TokenType     string  `json:"token_type"`
	Reference     string  `json:"reference"`
}

func novypayBaseURL() string {
	if url := os.Getenv(novypayBaseURLEnv); url != "" {
		return url
	}
	return novypayDefaultURL
}

// CreateNovypayPayment opens a payment session with the gateway and returns the
// reference and the redirect URL the client must be sent to.
func CreateNovypayPayment(payment NovypayPaymentRequest) (*NovypayPaymentResponse, error) {
	apiKey := os.Getenv(novypayAPIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("NOVYPAY_API_KEY is required in environment variables")
	}

	body, err := json.Marshal(payment)
	if err != nil {
		return nil, fmt.Errorf("error encoding payment request: %v", err)
	}

	req, err := http.NewRequest("POST", novypayBaseURL()+"/payments/combined/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("X-Api-Key", apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := novypayClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling NovyPay: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("NovyPay API error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var apiResp NovypayPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}
	if apiResp.Reference == "" {
		return nil, fmt.Errorf("NovyPay returned an empty payment reference")
	}

	return &apiResp, nil
}

// VerifyNovypayPayment fetches the final status of a payment attempt by its reference.
func VerifyNovypayPayment(reference string) (*NovypayVerifyResponse, error) {
	apiKey := os.Getenv(novypayAPIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("NOVYPAY_API_KEY is required in environment variables")
	}

	req, err := http.NewRequest("GET", novypayBaseURL()+"/payments/verify/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("X-Api-Key", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := novypayClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling NovyPay: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("NovyPay API error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var apiResp NovypayVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}

	return &apiResp, nil
}
