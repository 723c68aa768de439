package storefront

import "errors"

var ErrInvalidProduct = errors.New("missing or invalid product")
