package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcsurf/surfstore/internal/domain/catalog"
)

func storeWithBoard(t *testing.T, stock int) *CatalogStore {
	t.Helper()
	s := NewCatalogStore()
	p, err := catalog.NewSurfboard("p1", "Board", "", decimal.NewFromInt(100), stock, "c1", catalog.BoardSpec{Type: "Shortboard"})
	require.NoError(t, err)
	s.AddProduct(p)
	return s
}

func TestGetProductReturnsClone(t *testing.T) {
	s := storeWithBoard(t, 5)
	ctx := context.Background()

	p, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)
	p.Stock = 0

	again, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock, "callers must not mutate store state through returned products")
}

func TestGetProductNotFound(t *testing.T) {
	s := NewCatalogStore()
	_, err := s.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestReserveReleaseAvailable(t *testing.T) {
	s := storeWithBoard(t, 5)
	ctx := context.Background()

	ok, err := s.Available(ctx, "p1", 5)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Reserve(ctx, "p1", 3))

	ok, err = s.Available(ctx, "p1", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.Reserve(ctx, "p1", 3), catalog.ErrInsufficientStock)

	require.NoError(t, s.Release(ctx, "p1", 3))
	ok, err = s.Available(ctx, "p1", 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConcurrentReservesNeverOversell(t *testing.T) {
	s := storeWithBoard(t, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Reserve(ctx, "p1", 1)
		}()
	}
	wg.Wait()

	p, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock, "exactly 50 of 100 reserves should succeed")
}

func TestSetStockOverwrites(t *testing.T) {
	s := storeWithBoard(t, 5)
	ctx := context.Background()

	require.NoError(t, s.SetStock(ctx, "p1", 2))
	p, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)

	assert.ErrorIs(t, s.SetStock(ctx, "p1", -1), catalog.ErrInvalidQuantity)
	assert.ErrorIs(t, s.SetStock(ctx, "missing", 3), catalog.ErrNotFound)
}

func TestHierarchyLinksProductIntoCategory(t *testing.T) {
	s := NewCatalogStore()
	ctx := context.Background()

	family := catalog.NewFamily("f1", "Surfboards", "")
	cat := catalog.NewCategory("c1", "Longboards", "", family)
	s.AddFamily(family)
	s.AddCategory(cat)

	p, err := catalog.NewSurfboard("p1", "Board", "", decimal.NewFromInt(100), 1, "c1", catalog.BoardSpec{Type: "Longboard"})
	require.NoError(t, err)
	s.AddProduct(p)

	got, err := s.GetCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, got.ProductIDs)

	families := s.ListFamilies(ctx)
	require.Len(t, families, 1)
	assert.Equal(t, []string{"c1"}, families[0].CategoryIDs)
}

func TestListProductsKeepsInsertionOrder(t *testing.T) {
	s := NewCatalogStore()
	for _, id := range []string{"b", "a", "c"} {
		p, err := catalog.NewAccessory(id, "Item", "", decimal.NewFromInt(10), 1, "c1", catalog.AccessorySpec{Type: "Wax"})
		require.NoError(t, err)
		s.AddProduct(p)
	}

	products := s.ListProducts(context.Background())
	require.Len(t, products, 3)
	assert.Equal(t, "b", products[0].ID)
	assert.Equal(t, "a", products[1].ID)
	assert.Equal(t, "c", products[2].ID)
}
