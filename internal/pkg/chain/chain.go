// Package chain holds the EVM networks and currencies the storefront accepts.
package chain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"
)

const (
	EthereumID int64 = 1
	PolygonID  int64 = 137
)

// Currency is a ticker symbol as used by the payment processor.
type Currency string

const (
	ETH   Currency = "ETH"
	MATIC Currency = "MATIC"
	// POL is the rebranded MATIC; the processor still expects MATIC.
	POL Currency = "POL"
)

var ErrInvalidAmount = errors.New("invalid amount")

// NormalizeCurrency upper-cases c and maps POL onto MATIC.
func NormalizeCurrency(c string) Currency {
	cur := Currency(strings.ToUpper(strings.TrimSpace(c)))
	if cur == POL {
		return MATIC
	}
	return cur
}

// IsSupported reports whether c is accepted for payment.
func IsSupported(c string) bool {
	switch NormalizeCurrency(c) {
	case ETH, MATIC:
		return true
	}
	return false
}

// IsAddress reports whether s is a hex encoded EVM address.
func IsAddress(s string) bool {
	return common.IsHexAddress(s)
}

// ToWei converts an ether-denominated amount into wei.
func ToWei(amount decimal.Decimal) (*big.Int, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	wei := amount.Mul(decimal.NewFromInt(params.Ether))
	if !wei.IsInteger() {
		return nil, fmt.Errorf("%w: more than 18 decimal places", ErrInvalidAmount)
	}
	return wei.BigInt(), nil
}
