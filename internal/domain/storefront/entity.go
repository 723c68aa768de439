package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/cryptoprivacy/storefront-api/internal/domain/product"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/chain"
)

// PayOption is one way to pay for a product from a browser wallet.
type PayOption struct {
	ChainID  int64           `json:"chain_id"`
	Currency chain.Currency  `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	// ValueWei is the send-transaction value, as a decimal string.
	ValueWei string `json:"value_wei"`
}

// ProductCard is a product as listed on the landing page.
type ProductCard struct {
	*product.Product
	SoldOut    bool        `json:"sold_out"`
	PayOptions []PayOption `json:"pay_options"`
}

// Landing is the landing page model.
type Landing struct {
	Lang           Lang          `json:"lang"`
	Text           Translations  `json:"text"`
	PaymentAddress string        `json:"payment_address"`
	Products       []ProductCard `json:"products"`
}

// StatusPage is the model behind the processor's success and cancel redirects.
type StatusPage struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Product *product.Product `json:"product,omitempty"`
	// BackURL points back to the product when one is known.
	BackURL string `json:"back_url,omitempty"`
}
