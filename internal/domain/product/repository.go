package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/supabase"
)

// Repository defines product data access
type Repository interface {
	ListActive(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

type restRepository struct {
	client *supabase.Client
	table  string
}

// NewRESTRepository reads products through the Supabase REST interface.
func NewRESTRepository(client *supabase.Client, table string) Repository {
	return &restRepository{client: client, table: table}
}

func (r *restRepository) ListActive(ctx context.Context) ([]*Product, error) {
	products := []*Product{}
	query := url.Values{
		"select":    {"*"},
		"is_active": {"eq.true"},
	}
	if err := r.client.Select(ctx, r.table, query, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *restRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	var products []*Product
	query := url.Values{
		"select": {"*"},
		"id":     {"eq." + id},
		"limit":  {"1"},
	}
	if err := r.client.Select(ctx, r.table, query, &products); err != nil {
		var apiErr *supabase.APIError
		// A malformed id is rejected by PostgREST with 400 (invalid input syntax).
		if errors.As(err, &apiErr) && apiErr.Status == 400 {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}
	return products[0], nil
}

type sqlRepository struct {
	db    *sqlx.DB
	table string
}

// NewSQLRepository reads products directly from PostgreSQL.
func NewSQLRepository(db *sqlx.DB, table string) Repository {
	return &sqlRepository{db: db, table: pq.QuoteIdentifier(table)}
}

const productColumns = `id::text AS id, title_en, description_en, mint_price_eth, mint_price_matic,
	max_supply, COALESCE(minted_count, 0) AS minted_count, is_active`

func (r *sqlRepository) ListActive(ctx context.Context) ([]*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE is_active = true ORDER BY title_en`, productColumns, r.table)
	products := []*Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id::text = $1`, productColumns, r.table)
	var p Product
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
