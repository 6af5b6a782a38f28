package storefront

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcsurf/surfstore/internal/domain/catalog"
	"github.com/tcsurf/surfstore/internal/infrastructure/memory"
	"github.com/tcsurf/surfstore/internal/seed"
)

func newService(t *testing.T) (*Service, *memory.CatalogStore) {
	t.Helper()
	store := memory.NewCatalogStore()
	customers := memory.NewCustomerRepository()
	require.NoError(t, seed.Load(context.Background(), store, customers))
	return NewService(store, customers, NewCarts(), 5, nil), store
}

func TestListProductsFilters(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	all, err := svc.ListProducts(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 12)

	boards, err := svc.ListProducts(ctx, "1", "")
	require.NoError(t, err)
	assert.Len(t, boards, 5, "surfboard family spans three categories")

	longboards, err := svc.ListProducts(ctx, "", "1")
	require.NoError(t, err)
	assert.Len(t, longboards, 2)

	both, err := svc.ListProducts(ctx, "1", "2")
	require.NoError(t, err)
	assert.Len(t, both, 2, "shortboards category within the surfboard family")
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	hits := svc.Search(ctx, "LONGBOARD")
	assert.Len(t, hits, 2)

	hits = svc.Search(ctx, "wax")
	require.Len(t, hits, 1)
	assert.Equal(t, "9", hits[0].ID)

	assert.Empty(t, svc.Search(ctx, "snowboard"))
}

func TestLowStock(t *testing.T) {
	svc, _ := newService(t)

	low := svc.LowStock(context.Background())
	// Seed stocks under 5: product 2 (3) and product 5 (4).
	require.Len(t, low, 2)
	ids := []string{low[0].ID, low[1].ID}
	assert.Contains(t, ids, "2")
	assert.Contains(t, ids, "5")
}

func TestInventoryValue(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	want := decimal.Zero
	for _, p := range store.ListProducts(ctx) {
		want = want.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	assert.True(t, svc.InventoryValue(ctx).Equal(want))
}

func TestCartFlow(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	count, err := svc.AddCartItem(ctx, "1", "8", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.AddCartItem(ctx, "1", "9", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = svc.AddCartItem(ctx, "1", "missing", 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = svc.AddCartItem(ctx, "1", "8", 1000)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	count, err = svc.UpdateCartItem(ctx, "1", "8", 5)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	count, err = svc.UpdateCartItem(ctx, "1", "9", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, count, "zero quantity removes the line")
}

func TestViewCart(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddCartItem(ctx, "1", "8", 2)
	require.NoError(t, err)

	view, err := svc.ViewCart(ctx, "1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Competition Leash 6ft", view.Lines[0].Name)
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("69.98")))
	assert.True(t, view.Total.Equal(view.Subtotal))

	svc.ApplyDiscount(ctx, "1", 0.5)
	view, err = svc.ViewCart(ctx, "1")
	require.NoError(t, err)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("34.99")))
}

func TestSetStock(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetStock(ctx, "8", 1))
	p, err := store.GetProduct(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	assert.ErrorIs(t, svc.SetStock(ctx, "missing", 1), catalog.ErrNotFound)
}

func TestInventorySortedByID(t *testing.T) {
	svc, _ := newService(t)

	lines := svc.Inventory(context.Background())
	require.Len(t, lines, 12)
	for i := 1; i < len(lines); i++ {
		assert.LessOrEqual(t, lines[i-1].Product.ID, lines[i].Product.ID)
	}
	// Value is price times stock.
	first := lines[0]
	assert.True(t, first.Value.Equal(first.Product.Price.Mul(decimal.NewFromInt(int64(first.Product.Stock)))))
}
