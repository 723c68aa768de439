package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/cryptoprivacy/storefront-api/internal/domain/product"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/chain"
)

const (
	StatusSuccess   = "success"
	StatusCancelled = "cancelled"

	successMessage   = "Payment received (processing)"
	cancelledMessage = "Payment cancelled"
)

// Catalog is the product source of the storefront.
type Catalog interface {
	ListActive(ctx context.Context) ([]*product.Product, error)
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

// Service builds storefront page models
type Service struct {
	catalog        Catalog
	paymentAddress string
}

// NewService creates storefront service
func NewService(catalog Catalog, paymentAddress string) *Service {
	return &Service{catalog: catalog, paymentAddress: paymentAddress}
}

// Landing returns the landing page in lang.
func (s *Service) Landing(ctx context.Context, lang Lang) (*Landing, error) {
	products, err := s.catalog.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{
			Product:    p,
			SoldOut:    p.SoldOut(),
			PayOptions: payOptions(p),
		})
	}

	lang = ParseLang(string(lang))
	return &Landing{
		Lang:           lang,
		Text:           Translate(lang),
		PaymentAddress: s.paymentAddress,
		Products:       cards,
	}, nil
}

// Success returns the page shown after the processor confirms payment.
func (s *Service) Success(ctx context.Context, productID string) (*StatusPage, error) {
	p, err := s.lookup(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &StatusPage{Status: StatusSuccess, Message: successMessage, Product: p}, nil
}

// Cancel returns the page shown when the buyer abandons the invoice. The
// product is optional here.
func (s *Service) Cancel(ctx context.Context, productID string) (*StatusPage, error) {
	page := &StatusPage{Status: StatusCancelled, Message: cancelledMessage}

	p, err := s.lookup(ctx, productID)
	switch {
	case err == nil:
		page.Product = p
		page.BackURL = "/products/" + url.PathEscape(p.ID.String())
	case errors.Is(err, ErrInvalidProduct):
	default:
		return nil, err
	}
	return page, nil
}

func (s *Service) lookup(ctx context.Context, productID string) (*product.Product, error) {
	p, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrInvalidProduct
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func payOptions(p *product.Product) []PayOption {
	opts := make([]PayOption, 0, 2)
	add := func(chainID int64, cur chain.Currency, price *decimal.Decimal) {
		if price == nil {
			return
		}
		wei, err := chain.ToWei(*price)
		if err != nil {
			log.Warn().Err(err).Str("product_id", p.ID.String()).Str("currency", string(cur)).Msg("Skipping pay option")
			return
		}
		opts = append(opts, PayOption{ChainID: chainID, Currency: cur, Amount: *price, ValueWei: wei.String()})
	}

	add(chain.EthereumID, chain.ETH, p.MintPriceETH)
	add(chain.PolygonID, chain.POL, p.MintPriceMATIC)
	return opts
}
