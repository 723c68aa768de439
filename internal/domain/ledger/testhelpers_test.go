package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// scenarioRecords builds 25 records ordered newest first: 12 pending, 3 of
// which belong to a@x.com; the remaining 13 alternate success and failed.
func scenarioRecords() []TransactionRecord {
	records := make([]TransactionRecord, 0, 25)
	for i := 0; i < 25; i++ {
		rec := TransactionRecord{
			TransactionID:   TransactionID(fmt.Sprintf("%d", 100-i)),
			TransactionTime: baseTime.Add(-time.Duration(i) * time.Hour),
			WalletAddress:   fmt.Sprintf("0x%040d", i),
			Chain:           "ethereum",
			Amount:          decimal.New(int64(i+1), -2),
		}
		switch {
		case i < 12:
			rec.Status = StatusPending
		case i%2 == 0:
			rec.Status = StatusSuccess
		default:
			rec.Status = StatusFailed
		}
		switch {
		case i == 1 || i == 5 || i == 9:
			rec.Email = strPtr("A@X.com")
		case i == 13:
			rec.Email = strPtr("a@x.com")
		case i%3 == 0:
			rec.Email = strPtr(fmt.Sprintf("user%d@example.com", i))
		}
		if i%4 == 0 {
			rec.ProductTitle = strPtr("Privacy Guide")
		}
		records = append(records, rec)
	}
	return records
}

type stubRepository struct {
	records []TransactionRecord
	err     error
	calls   int
}

func (s *stubRepository) FetchAll(ctx context.Context) ([]TransactionRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}
