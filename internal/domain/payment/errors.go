package payment

import "errors"

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrProviderFailure = errors.New("payment provider error")
)
