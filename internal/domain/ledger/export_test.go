package ledger

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestExportCSVColumnsAndRowCount(t *testing.T) {
	records := ApplyFilters(scenarioRecords(), FilterState{Status: "pending"})

	var buf bytes.Buffer
	if err := ExportCSV(&buf, records, time.UTC); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid csv: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("expected %d rows, got %d", len(records)+1, len(rows))
	}
	if strings.Join(rows[0], ",") != "ID,Time,Wallet,Chain,Amount,Status,Email,Product" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	for i, row := range rows {
		if len(row) != 8 {
			t.Fatalf("row %d has %d columns", i, len(row))
		}
	}

	first := rows[1]
	if first[0] != "100" || first[1] != "5/1/2024, 12:00:00 PM" || first[5] != "pending" {
		t.Fatalf("unexpected first row %v", first)
	}
	if first[7] != "Privacy Guide" {
		t.Fatalf("expected product title, got %q", first[7])
	}
	if rows[2][7] != "-" || rows[2][6] != "A@X.com" {
		t.Fatalf("unexpected second row %v", rows[2])
	}
}

func TestExportCSVEmptyIsHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, nil, time.UTC); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if buf.String() != "ID,Time,Wallet,Chain,Amount,Status,Email,Product\n" {
		t.Fatalf("unexpected empty export %q", buf.String())
	}
}

func TestExportCSVQuotesDelimiters(t *testing.T) {
	records := []TransactionRecord{{
		TransactionID:   "1",
		TransactionTime: baseTime,
		Status:          StatusSuccess,
		ProductTitle:    strPtr(`Guide, "Vol 2"`),
	}}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, records, time.UTC); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid csv: %v", err)
	}
	if len(rows[1]) != 8 || rows[1][7] != `Guide, "Vol 2"` {
		t.Fatalf("delimiter in field corrupted the row: %v", rows[1])
	}
	// The table time contains a comma too; it must survive as one field.
	if rows[1][1] != "5/1/2024, 12:00:00 PM" {
		t.Fatalf("unexpected time field %q", rows[1][1])
	}
}

func TestExportFilename(t *testing.T) {
	now := time.UnixMilli(1714564800123)
	if got := ExportFilename(now); got != "transactions_1714564800123.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
	if ExportFilename(now) == ExportFilename(now.Add(time.Millisecond)) {
		t.Fatal("filenames must differ per instant")
	}
}
