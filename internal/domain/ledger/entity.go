package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/jsonx"
)

// Status of a ledger transaction
type Status string

const (
	StatusSuccess Status = "success"
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
)

// TransactionID is the primary key of a ledger row, integer or text.
type TransactionID = jsonx.Scalar

// TransactionRecord is one row of the admin ledger view.
type TransactionRecord struct {
	TransactionID   TransactionID   `json:"transaction_id" db:"transaction_id"`
	TransactionTime time.Time       `json:"transaction_time" db:"transaction_time"`
	WalletAddress   string          `json:"wallet_address" db:"wallet_address"`
	Chain           string          `json:"chain" db:"chain"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Status          Status          `json:"status" db:"status"`
	Email           *string         `json:"email" db:"email"`
	ProductTitle    *string         `json:"product_title" db:"product_title"`
}

// timestamp layouts PostgREST emits for timestamptz and timestamp columns
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func (r *TransactionRecord) UnmarshalJSON(data []byte) error {
	type alias TransactionRecord
	aux := struct {
		*alias
		TransactionTime *string      `json:"transaction_time"`
		Chain           jsonx.Scalar `json:"chain"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.TransactionTime != nil && *aux.TransactionTime != "" {
		t, err := parseTimestamp(*aux.TransactionTime)
		if err != nil {
			return fmt.Errorf("transaction_time: %w", err)
		}
		r.TransactionTime = t
	}

	r.Chain = aux.Chain.String()
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FilterState holds the viewer's filter inputs. Blank means no constraint.
type FilterState struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}
