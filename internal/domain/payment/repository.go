package payment

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/supabase"
)

// Repository defines transaction data access
type Repository interface {
	// Create inserts tx and returns the stored row.
	Create(ctx context.Context, tx *Transaction) (*Transaction, error)
}

type restRepository struct {
	client *supabase.Client
	table  string
}

// NewRESTRepository writes transactions through the Supabase REST interface.
func NewRESTRepository(client *supabase.Client, table string) Repository {
	return &restRepository{client: client, table: table}
}

func (r *restRepository) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	row := map[string]interface{}{
		"product_id":     tx.ProductID,
		"wallet_address": tx.WalletAddress,
		"chain":          tx.Chain,
		"amount":         tx.Amount,
		"email":          tx.Email,
		"status":         tx.Status,
	}

	var stored []*Transaction
	if err := r.client.Insert(ctx, r.table, row, &stored); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	if len(stored) == 0 {
		return tx, nil
	}
	return stored[0], nil
}

type sqlRepository struct {
	db    *sqlx.DB
	table string
}

// NewSQLRepository writes transactions directly to PostgreSQL.
func NewSQLRepository(db *sqlx.DB, table string) Repository {
	return &sqlRepository{db: db, table: pq.QuoteIdentifier(table)}
}

func (r *sqlRepository) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (product_id, wallet_address, chain, amount, email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text AS id, product_id::text AS product_id, wallet_address,
			chain::text AS chain, amount, email, status
	`, r.table)

	var stored Transaction
	err := r.db.GetContext(ctx, &stored, query,
		tx.ProductID, tx.WalletAddress, tx.Chain, tx.Amount, tx.Email, tx.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return &stored, nil
}
