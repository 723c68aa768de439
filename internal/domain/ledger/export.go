package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// CSVHeader is the fixed export column order.
var CSVHeader = []string{"ID", "Time", "Wallet", "Chain", "Amount", "Status", "Email", "Product"}

// ExportCSV writes the filtered records as RFC 4180 CSV, header first.
func ExportCSV(w io.Writer, filtered []TransactionRecord, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range filtered {
		if err := cw.Write(FormatRow(rec, loc).Fields()); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.TransactionID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename is unique per generation instant.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("transactions_%d.csv", now.UnixMilli())
}
