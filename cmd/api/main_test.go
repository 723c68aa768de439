package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cryptoprivacy/storefront-api/internal/config"
	"github.com/cryptoprivacy/storefront-api/internal/domain/ledger"
	"github.com/cryptoprivacy/storefront-api/internal/domain/payment"
	"github.com/cryptoprivacy/storefront-api/internal/domain/product"
	"github.com/cryptoprivacy/storefront-api/internal/domain/storefront"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/nowpayments"
)

type emptyLedger struct{}

func (emptyLedger) FetchAll(ctx context.Context) ([]ledger.TransactionRecord, error) {
	return []ledger.TransactionRecord{}, nil
}

type emptyCatalog struct{}

func (emptyCatalog) ListActive(ctx context.Context) ([]*product.Product, error) {
	return []*product.Product{}, nil
}

func (emptyCatalog) GetByID(ctx context.Context, id string) (*product.Product, error) {
	return nil, product.ErrProductNotFound
}

type noInvoices struct{}

func (noInvoices) CreatePayment(ctx context.Context, p nowpayments.PaymentRequest) (*nowpayments.Payment, error) {
	return nil, nowpayments.ErrNotConfigured
}

type noTransactions struct{}

func (noTransactions) Create(ctx context.Context, tx *payment.Transaction) (*payment.Transaction, error) {
	return tx, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		AdminUser:      "admin",
		AdminPass:      "admin123",
	}

	ledgerService, err := ledger.NewService(emptyLedger{}, ledger.NewMemorySessionStore(time.Minute), "UTC")
	if err != nil {
		t.Fatalf("ledger service: %v", err)
	}
	productService := product.NewService(emptyCatalog{}, nil, 0)

	return newRouter(cfg, routeHandlers{
		ledger:     ledger.NewHandler(ledgerService),
		products:   product.NewHandler(productService),
		storefront: storefront.NewHandler(storefront.NewService(productService, "0xTestWalletAddress")),
		payments:   payment.NewHandler(payment.NewService(noTransactions{}, noInvoices{}, nil, "http://localhost:3000")),
	})
}

func TestRouterMounts(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		auth   bool
		code   int
	}{
		{"health", http.MethodGet, "/health", "", false, http.StatusOK},
		{"landing", http.MethodGet, "/api/v1/landing?lang=jp", "", false, http.StatusOK},
		{"products", http.MethodGet, "/api/v1/products", "", false, http.StatusOK},
		{"cancel page", http.MethodGet, "/api/v1/status/cancel", "", false, http.StatusOK},
		{"success page without product", http.MethodGet, "/api/v1/status/success", "", false, http.StatusNotFound},
		{"payment missing fields", http.MethodPost, "/api/v1/payments", `{"currency":"ETH"}`, false, http.StatusBadRequest},
		{"admin without credentials", http.MethodGet, "/admin/api/transactions", "", false, http.StatusUnauthorized},
		{"admin passthrough", http.MethodGet, "/admin/api/transactions", "", true, http.StatusOK},
		{"admin session mount", http.MethodPost, "/admin/api/ledger/sessions", `{}`, true, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.auth {
				req.SetBasicAuth("admin", "admin123")
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			if rr.Code != tt.code {
				t.Fatalf("expected status %d, got %d: %s", tt.code, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestRouterSetsSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("expected X-Frame-Options DENY, got %q", rr.Header().Get("X-Frame-Options"))
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}
