package storefront

import (
	"context"

	"github.com/tcsurf/surfstore/internal/domain/catalog"
)

// Catalog is the read/admin surface of the product store the storefront needs.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	ListProducts(ctx context.Context) []*catalog.Product
	ListFamilies(ctx context.Context) []*catalog.Family
	GetCategory(ctx context.Context, id string) (*catalog.Category, error)
	SetStock(ctx context.Context, productID string, quantity int) error
}
