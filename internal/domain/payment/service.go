package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cryptoprivacy/storefront-api/internal/domain/product"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/chain"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/nowpayments"
)

// InvoiceCreator is the hosted payment processor.
type InvoiceCreator interface {
	CreatePayment(ctx context.Context, p nowpayments.PaymentRequest) (*nowpayments.Payment, error)
}

// ProductLookup resolves the product a payment is for.
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// Service handles payment business logic
type Service struct {
	repo     Repository
	invoices InvoiceCreator
	products ProductLookup // nil skips the product check
	baseURL  string
	now      func() time.Time
}

// NewService creates payment service
func NewService(repo Repository, invoices InvoiceCreator, products ProductLookup, baseURL string) *Service {
	return &Service{
		repo:     repo,
		invoices: invoices,
		products: products,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

// CreateInvoice registers a hosted payment and returns the URL the buyer is
// redirected to. POL is billed as MATIC.
func (s *Service) CreateInvoice(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	productID := req.ProductID.String()
	if s.products != nil {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				return nil, ErrUnknownProduct
			}
			return nil, err
		}
	}

	currency := string(chain.NormalizeCurrency(req.Currency))
	q := url.Values{"product_id": {productID}}.Encode()

	payload := nowpayments.PaymentRequest{
		PriceAmount:      *req.Amount,
		PriceCurrency:    currency,
		PayCurrency:      currency,
		IPNCallbackURL:   s.baseURL + "/api/webhook/nowpayments",
		OrderID:          fmt.Sprintf("%s_%d", productID, s.now().UnixMilli()),
		OrderDescription: "Mint access to: " + productID,
		SuccessURL:       s.baseURL + "/status/success?" + q,
		CancelURL:        s.baseURL + "/status/cancel?" + q,
		CustomerEmail:    req.Email,
	}

	log.Info().
		Str("order_id", payload.OrderID).
		Str("currency", currency).
		Str("amount", payload.PriceAmount.String()).
		Msg("Creating NOWPayments invoice")

	payment, err := s.invoices.CreatePayment(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	return &CreatePaymentResponse{PaymentURL: payment.InvoiceURL}, nil
}

// RecordTransaction stores a wallet payment as pending.
func (s *Service) RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*Transaction, error) {
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	tx := &Transaction{
		ProductID:     req.ProductID,
		WalletAddress: req.WalletAddress,
		Chain:         req.Chain,
		Amount:        *req.Amount,
		Status:        StatusPending,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		tx.Email = &email
	}

	stored, err := s.repo.Create(ctx, tx)
	if err != nil {
		return nil, err
	}

	// Supply counters may move once the mint settles.
	if c, ok := s.products.(cacheInvalidator); ok {
		c.InvalidateCache(ctx)
	}

	log.Info().
		Str("product_id", stored.ProductID.String()).
		Str("chain", stored.Chain.String()).
		Msg("Wallet transaction recorded")
	return stored, nil
}
