package product

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/jsonx"
)

// Product is a purchasable privacy guide.
type Product struct {
	ID             jsonx.Scalar     `json:"id" db:"id"`
	TitleEN        string           `json:"title_en" db:"title_en"`
	DescriptionEN  *string          `json:"description_en" db:"description_en"`
	MintPriceETH   *decimal.Decimal `json:"mint_price_eth" db:"mint_price_eth"`
	MintPriceMATIC *decimal.Decimal `json:"mint_price_matic" db:"mint_price_matic"`
	MaxSupply      *int64           `json:"max_supply" db:"max_supply"`
	MintedCount    int64            `json:"minted_count" db:"minted_count"`
	IsActive       bool             `json:"is_active" db:"is_active"`
}

// UnmarshalJSON also accepts the older price_eth / price_matic columns.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		PriceETH   *decimal.Decimal `json:"price_eth"`
		PriceMATIC *decimal.Decimal `json:"price_matic"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.MintPriceETH == nil {
		p.MintPriceETH = aux.PriceETH
	}
	if p.MintPriceMATIC == nil {
		p.MintPriceMATIC = aux.PriceMATIC
	}
	return nil
}

// SoldOut reports whether a capped supply has been reached.
func (p *Product) SoldOut() bool {
	return p.MaxSupply != nil && p.MintedCount >= *p.MaxSupply
}
