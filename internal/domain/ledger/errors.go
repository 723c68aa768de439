package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("ledger session not found")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// StoreError is returned when the backing store rejects a read.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger store: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
