package checkout

import (
	"context"

	"github.com/tcsurf/surfstore/internal/domain/cart"
	"github.com/tcsurf/surfstore/internal/domain/catalog"
)

type IDGenerator interface {
	NewID() string
}

// DeliverySequence issues the numeric delivery ids embedded in tracking numbers.
type DeliverySequence interface {
	Next() uint64
}

// Catalog is the product lookup plus the stock ledger checkout reserves against.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	catalog.Ledger
}

// CartProvider resolves the customer's live cart, shared with the storefront.
type CartProvider interface {
	Get(customerID string) *cart.Cart
}
