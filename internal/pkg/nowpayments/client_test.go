package nowpayments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCreatePaymentSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("x-api-key") != "key" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Invalid api key"}`))
			return
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body["pay_currency"] != "MATIC" || body["order_id"] != "p1_1700000000000" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"unexpected payload"}`))
			return
		}
		if body["price_amount"] != 12.5 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"unexpected amount"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"payment_id":5077125051,"payment_status":"waiting","invoice_url":"https://nowpayments.io/payment/?iid=1"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "key", time.Second)
	payment, err := client.CreatePayment(context.Background(), PaymentRequest{
		PriceAmount:   decimal.RequireFromString("12.5"),
		PriceCurrency: "MATIC",
		PayCurrency:   "MATIC",
		OrderID:       "p1_1700000000000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.InvoiceURL != "https://nowpayments.io/payment/?iid=1" {
		t.Fatalf("unexpected invoice url %q", payment.InvoiceURL)
	}
	if payment.PaymentID.String() != "5077125051" {
		t.Fatalf("unexpected payment id %q", payment.PaymentID)
	}
}

func TestCreatePaymentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":400,"message":"Currency btc is not supported"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "key", time.Second)
	_, err := client.CreatePayment(context.Background(), PaymentRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Currency btc is not supported" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestCreatePaymentFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "key", time.Second)
	_, err := client.CreatePayment(context.Background(), PaymentRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "NOWPayments API error" {
		t.Fatalf("expected fallback message, got %v", err)
	}
}

func TestCreatePaymentRequiresKey(t *testing.T) {
	client := NewClient("", "", time.Second)
	if _, err := client.CreatePayment(context.Background(), PaymentRequest{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
