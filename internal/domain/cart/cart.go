package cart

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tcsurf/surfstore/internal/domain/catalog"
)

var (
	ErrEmpty           = errors.New("cart: cart is empty")
	ErrInvalidQuantity = errors.New("cart: quantity must be greater than zero")
)

// Item is a quantity of one product. Prices are not captured here; the cart
// always reflects current catalog prices, unlike order line items.
type Item struct {
	ProductID string
	Quantity  int
}

// Cart accumulates intended purchases for one customer. Entries keep their
// insertion order so checkout produces line items in the order they were added.
type Cart struct {
	CustomerID   string
	items        map[string]*Item
	order        []string
	discountRate float64
}

func New(customerID string) *Cart {
	return &Cart{
		CustomerID: customerID,
		items:      make(map[string]*Item),
	}
}

// Add merges quantity into the cart after checking the increment is available.
func (c *Cart) Add(product *catalog.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !product.Available(quantity) {
		return catalog.ErrInsufficientStock
	}
	if item, ok := c.items[product.ID]; ok {
		item.Quantity += quantity
		return nil
	}
	c.items[product.ID] = &Item{ProductID: product.ID, Quantity: quantity}
	c.order = append(c.order, product.ID)
	return nil
}

// Update sets the line to an absolute quantity; zero or less removes the line.
// Positive quantities re-check availability against the product.
func (c *Cart) Update(product *catalog.Product, quantity int) error {
	if quantity <= 0 {
		c.Remove(product.ID)
		return nil
	}
	if !product.Available(quantity) {
		return catalog.ErrInsufficientStock
	}
	if item, ok := c.items[product.ID]; ok {
		item.Quantity = quantity
		return nil
	}
	c.items[product.ID] = &Item{ProductID: product.ID, Quantity: quantity}
	c.order = append(c.order, product.ID)
	return nil
}

func (c *Cart) Remove(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.items = make(map[string]*Item)
	c.order = nil
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// ApplyDiscount sets the discount rate, clamped into [0, 1].
func (c *Cart) ApplyDiscount(rate float64) {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	c.discountRate = rate
}

func (c *Cart) DiscountRate() float64 { return c.discountRate }

// Subtotal sums quantity times current unit price over all lines.
func (c *Cart) Subtotal(unitPrice func(productID string) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		item := c.items[id]
		total = total.Add(unitPrice(id).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Total is the subtotal with the discount rate applied.
func (c *Cart) Total(unitPrice func(productID string) decimal.Decimal) decimal.Decimal {
	subtotal := c.Subtotal(unitPrice)
	if c.discountRate == 0 {
		return subtotal
	}
	factor := decimal.NewFromFloat(1 - c.discountRate)
	return subtotal.Mul(factor)
}

// TotalWeight sums quantity times unit shipping weight over all lines.
func (c *Cart) TotalWeight(unitWeight func(productID string) float64) float64 {
	weight := 0.0
	for _, item := range c.items {
		weight += unitWeight(item.ProductID) * float64(item.Quantity)
	}
	return weight
}
