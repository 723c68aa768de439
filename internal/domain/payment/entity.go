package payment

import (
	"github.com/shopspring/decimal"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/jsonx"
)

// Status represents transaction status
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Transaction is a row of the transactions table, the source of the admin
// ledger.
type Transaction struct {
	ID            jsonx.Scalar    `json:"id,omitempty" db:"id"`
	ProductID     jsonx.Scalar    `json:"product_id" db:"product_id"`
	WalletAddress string          `json:"wallet_address" db:"wallet_address"`
	Chain         jsonx.Scalar    `json:"chain" db:"chain"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Email         *string         `json:"email" db:"email"`
	Status        Status          `json:"status" db:"status"`
}

// CreatePaymentRequest is the body of POST /payments
type CreatePaymentRequest struct {
	ProductID     jsonx.Scalar     `json:"product_id" validate:"required"`
	Email         string           `json:"email" validate:"required,email"`
	WalletAddress string           `json:"wallet_address" validate:"required,evm_address"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Currency      string           `json:"currency" validate:"required,pay_currency"`
}

// CreatePaymentResponse carries the hosted invoice to redirect to
type CreatePaymentResponse struct {
	PaymentURL string `json:"payment_url"`
}

// RecordTransactionRequest is the body of POST /transactions
type RecordTransactionRequest struct {
	ProductID     jsonx.Scalar     `json:"product_id" validate:"required"`
	WalletAddress string           `json:"wallet_address" validate:"required,evm_address"`
	Chain         jsonx.Scalar     `json:"chain" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Email         string           `json:"email" validate:"omitempty,email"`
}
