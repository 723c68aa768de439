package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/supabase"
)

// Repository is the read side of the transaction ledger.
type Repository interface {
	// FetchAll returns every record ordered by transaction_time descending.
	FetchAll(ctx context.Context) ([]TransactionRecord, error)
}

type restRepository struct {
	client *supabase.Client
	table  string
}

// NewRESTRepository reads the ledger through the Supabase REST interface.
func NewRESTRepository(client *supabase.Client, table string) Repository {
	return &restRepository{client: client, table: table}
}

func (r *restRepository) FetchAll(ctx context.Context) ([]TransactionRecord, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"transaction_time.desc"},
	}

	records := []TransactionRecord{}
	if err := r.client.Select(ctx, r.table, query, &records); err != nil {
		return nil, toStoreError(err)
	}
	if records == nil {
		records = []TransactionRecord{}
	}
	return records, nil
}

type sqlRepository struct {
	db    *sqlx.DB
	query string
}

// NewSQLRepository reads the ledger directly from PostgreSQL.
func NewSQLRepository(db *sqlx.DB, table string) Repository {
	query := fmt.Sprintf(`
		SELECT transaction_id, transaction_time,
			COALESCE(wallet_address, '') AS wallet_address,
			COALESCE(chain::text, '') AS chain,
			COALESCE(amount, 0) AS amount,
			COALESCE(status::text, '') AS status,
			email, product_title
		FROM %s
		ORDER BY transaction_time DESC
	`, pq.QuoteIdentifier(table))
	return &sqlRepository{db: db, query: query}
}

func (r *sqlRepository) FetchAll(ctx context.Context) ([]TransactionRecord, error) {
	records := []TransactionRecord{}
	if err := r.db.SelectContext(ctx, &records, r.query); err != nil {
		return nil, toStoreError(err)
	}
	return records, nil
}

func toStoreError(err error) *StoreError {
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) {
		return &StoreError{Message: apiErr.Message, Err: err}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &StoreError{Message: pqErr.Message, Err: err}
	}
	return &StoreError{Message: err.Error(), Err: err}
}
