package tracking

import (
	"sort"
	"sync"
)

// Service counts how many units of each product have been ordered. It is the
// projection behind the "most ordered products" admin view, fed by order
// placed events.
type Service struct {
	mu     sync.RWMutex
	counts map[string]*ProductCount
}

type ProductCount struct {
	ProductID string
	Name      string
	Orders    int
}

func NewService() *Service {
	return &Service{counts: make(map[string]*ProductCount)}
}

// Record accumulates quantity units against the product.
func (s *Service) Record(productID, name string, quantity int) {
	if productID == "" || quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.counts[productID]; ok {
		c.Orders += quantity
		return
	}
	s.counts[productID] = &ProductCount{ProductID: productID, Name: name, Orders: quantity}
}

// Count returns the accumulated units for one product, zero when unseen.
func (s *Service) Count(productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.counts[productID]; ok {
		return c.Orders
	}
	return 0
}

// Top returns up to n products sorted by order count, most ordered first.
// Ties break on product id for a stable listing.
func (s *Service) Top(n int) []ProductCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProductCount, 0, len(s.counts))
	for _, c := range s.counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].ProductID < out[j].ProductID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
