package ledger

import (
	"strings"
	"time"
)

const (
	// PageSize is the fixed number of rows per page.
	PageSize = 10

	// TimeLayout mirrors the en-US locale date/time string.
	TimeLayout = "1/2/2006, 3:04:05 PM"

	placeholder  = "-"
	emptyMessage = "No transactions found."
)

// Row is a record formatted for display. The CSV export writes the same
// strings, so table and file never disagree.
type Row struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Wallet  string `json:"wallet"`
	Chain   string `json:"chain"`
	Amount  string `json:"amount"`
	Status  string `json:"status"`
	Email   string `json:"email"`
	Product string `json:"product"`
}

// Fields returns the row in export column order.
func (r Row) Fields() []string {
	return []string{r.ID, r.Time, r.Wallet, r.Chain, r.Amount, r.Status, r.Email, r.Product}
}

// RenderModel is everything the admin viewer needs to draw the ledger.
type RenderModel struct {
	Loading       bool        `json:"loading"`
	Rows          []Row       `json:"rows"`
	Filter        FilterState `json:"filter"`
	Page          int         `json:"page"`
	PageSize      int         `json:"page_size"`
	TotalPages    int         `json:"total_pages"`
	TotalCount    int         `json:"total_count"`
	FilteredCount int         `json:"filtered_count"`
	HasPrevious   bool        `json:"has_previous"`
	HasNext       bool        `json:"has_next"`
	Empty         bool        `json:"empty"`
	Message       string      `json:"message,omitempty"`
}

// ApplyFilters returns the records matching f, in input order.
func ApplyFilters(records []TransactionRecord, f FilterState) []TransactionRecord {
	email := strings.ToLower(strings.TrimSpace(f.Email))
	status := strings.TrimSpace(f.Status)

	out := make([]TransactionRecord, 0, len(records))
	for _, rec := range records {
		if email != "" {
			if rec.Email == nil || !strings.Contains(strings.ToLower(*rec.Email), email) {
				continue
			}
		}
		if status != "" {
			if rec.Status == "" || !strings.EqualFold(string(rec.Status), status) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// TotalPages is ceil(n/pageSize), 0 for an empty set.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the slice for page (1-based) and the page count. An out of
// range page yields an empty slice.
func Paginate(filtered []TransactionRecord, page, pageSize int) ([]TransactionRecord, int) {
	total := TotalPages(len(filtered), pageSize)
	if page < 1 || pageSize <= 0 {
		return []TransactionRecord{}, total
	}
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []TransactionRecord{}, total
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total
}

// ClampPage keeps page within [1, totalPages]; page 1 when there are none.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// View derives the render model from the held records and viewer state.
func View(records []TransactionRecord, f FilterState, page int, loc *time.Location) RenderModel {
	filtered := ApplyFilters(records, f)
	total := TotalPages(len(filtered), PageSize)
	page = ClampPage(page, total)
	pageRecords, _ := Paginate(filtered, page, PageSize)

	rows := make([]Row, len(pageRecords))
	for i, rec := range pageRecords {
		rows[i] = FormatRow(rec, loc)
	}

	m := RenderModel{
		Rows:          rows,
		Filter:        f,
		Page:          page,
		PageSize:      PageSize,
		TotalPages:    total,
		TotalCount:    len(records),
		FilteredCount: len(filtered),
		HasPrevious:   page > 1,
		HasNext:       page < total,
		Empty:         len(filtered) == 0,
	}
	if m.Empty {
		m.Message = emptyMessage
	}
	return m
}

// LoadingView is shown before the record set has been fetched.
func LoadingView() RenderModel {
	return RenderModel{
		Loading:  true,
		Rows:     []Row{},
		Page:     1,
		PageSize: PageSize,
	}
}

// FormatRow renders one record with placeholders for missing fields.
func FormatRow(rec TransactionRecord, loc *time.Location) Row {
	return Row{
		ID:      string(rec.TransactionID),
		Time:    FormatTime(rec.TransactionTime, loc),
		Wallet:  rec.WalletAddress,
		Chain:   rec.Chain,
		Amount:  rec.Amount.String(),
		Status:  string(rec.Status),
		Email:   orPlaceholder(rec.Email),
		Product: orPlaceholder(rec.ProductTitle),
	}
}

// FormatTime renders t in the viewer's location.
func FormatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return placeholder
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}

func orPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}
