package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcsurf/surfstore/internal/domain/catalog"
)

func testProduct(t *testing.T, id string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewAccessory(id, "Item "+id, "", decimal.NewFromInt(price), stock, "cat", catalog.AccessorySpec{Type: "Leash"})
	require.NoError(t, err)
	return p
}

func TestAddMergesLines(t *testing.T) {
	c := New("cust1")
	p := testProduct(t, "p1", 25, 10)

	require.NoError(t, c.Add(p, 2))
	require.NoError(t, c.Add(p, 3))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, c.Count())
}

func TestAddRejectsInvalidAndUnavailable(t *testing.T) {
	c := New("cust1")
	p := testProduct(t, "p1", 25, 2)

	assert.ErrorIs(t, c.Add(p, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(p, 3), catalog.ErrInsufficientStock)
	assert.True(t, c.IsEmpty())
}

func TestUpdateAndRemove(t *testing.T) {
	c := New("cust1")
	p := testProduct(t, "p1", 25, 10)

	require.NoError(t, c.Add(p, 2))
	require.NoError(t, c.Update(p, 7))
	assert.Equal(t, 7, c.Count())

	assert.ErrorIs(t, c.Update(p, 11), catalog.ErrInsufficientStock)
	assert.Equal(t, 7, c.Count(), "failed update leaves the line untouched")

	require.NoError(t, c.Update(p, 0))
	assert.True(t, c.IsEmpty())

	// Removing an absent line is a no-op.
	c.Remove("missing")
	assert.True(t, c.IsEmpty())
}

func TestItemsKeepInsertionOrder(t *testing.T) {
	c := New("cust1")
	for _, id := range []string{"p3", "p1", "p2"} {
		require.NoError(t, c.Add(testProduct(t, id, 10, 5), 1))
	}

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p3", items[0].ProductID)
	assert.Equal(t, "p1", items[1].ProductID)
	assert.Equal(t, "p2", items[2].ProductID)
}

func TestTotalsWithDiscount(t *testing.T) {
	c := New("cust1")
	require.NoError(t, c.Add(testProduct(t, "p1", 100, 10), 2))
	require.NoError(t, c.Add(testProduct(t, "p2", 50, 10), 1))

	priceOf := func(id string) decimal.Decimal {
		if id == "p1" {
			return decimal.NewFromInt(100)
		}
		return decimal.NewFromInt(50)
	}

	assert.True(t, c.Subtotal(priceOf).Equal(decimal.NewFromInt(250)))
	assert.True(t, c.Total(priceOf).Equal(decimal.NewFromInt(250)))

	c.ApplyDiscount(0.1)
	assert.True(t, c.Total(priceOf).Equal(decimal.NewFromInt(225)))
}

func TestApplyDiscountClamps(t *testing.T) {
	c := New("cust1")
	c.ApplyDiscount(-0.5)
	assert.Zero(t, c.DiscountRate())

	c.ApplyDiscount(1.5)
	assert.Equal(t, 1.0, c.DiscountRate())
}

func TestTotalWeight(t *testing.T) {
	c := New("cust1")
	require.NoError(t, c.Add(testProduct(t, "p1", 10, 10), 3))

	weight := c.TotalWeight(func(string) float64 { return 0.2 })
	assert.InDelta(t, 0.6, weight, 1e-9)
}

func TestClear(t *testing.T) {
	c := New("cust1")
	require.NoError(t, c.Add(testProduct(t, "p1", 10, 10), 1))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Items())
}
