package storefront

import (
	"sync"

	"github.com/tcsurf/surfstore/internal/domain/cart"
)

// Carts hands out one cart per customer, creating it on first use. The lock
// guards the map only; carts themselves assume the single-actor model.
type Carts struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func NewCarts() *Carts {
	return &Carts{carts: make(map[string]*cart.Cart)}
}

func (c *Carts) Get(customerID string) *cart.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.carts[customerID]; ok {
		return existing
	}
	created := cart.New(customerID)
	c.carts[customerID] = created
	return created
}
