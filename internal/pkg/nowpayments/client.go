// Package nowpayments creates hosted crypto payments through the NOWPayments API.
package nowpayments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.nowpayments.io"
	defaultTimeout = 15 * time.Second
)

var ErrNotConfigured = errors.New("nowpayments api key is not configured")

// APIError is a non-2xx response from NOWPayments.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nowpayments http error: status=%d message=%s", e.Status, e.Message)
}

// PaymentRequest is the body of POST /v1/payment.
type PaymentRequest struct {
	PriceAmount      decimal.Decimal `json:"price_amount"`
	PriceCurrency    string          `json:"price_currency"`
	PayCurrency      string          `json:"pay_currency"`
	IPNCallbackURL   string          `json:"ipn_callback_url"`
	OrderID          string          `json:"order_id"`
	OrderDescription string          `json:"order_description"`
	SuccessURL       string          `json:"success_url"`
	CancelURL        string          `json:"cancel_url"`
	CustomerEmail    string          `json:"customer_email"`
}

// Payment is the subset of the payment response the storefront uses.
type Payment struct {
	PaymentID     json.Number `json:"payment_id"`
	PaymentStatus string      `json:"payment_status"`
	PayAddress    string      `json:"pay_address"`
	InvoiceURL    string      `json:"invoice_url"`
	OrderID       string      `json:"order_id"`
}

// Client is a NOWPayments API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a new NOWPayments client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// CreatePayment registers a payment and returns the processor's view of it.
func (c *Client) CreatePayment(ctx context.Context, p PaymentRequest) (*Payment, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, ErrNotConfigured
	}

	// The API wants price_amount as a JSON number.
	payload, err := json.Marshal(struct {
		PaymentRequest
		PriceAmount json.Number `json:"price_amount"`
	}{p, json.Number(p.PriceAmount.String())})
	if err != nil {
		return nil, fmt.Errorf("nowpayments request error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("nowpayments request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nowpayments request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nowpayments read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errBody)
		if errBody.Message == "" {
			errBody.Message = "NOWPayments API error"
		}
		return nil, &APIError{Status: resp.StatusCode, Message: errBody.Message}
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("nowpayments decode response: %w", err)
	}
	return &payment, nil
}
