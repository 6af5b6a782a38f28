package memory

import (
	"context"
	"sync"

	"github.com/tcsurf/surfstore/internal/domain/catalog"
)

// CatalogStore owns the product hierarchy and embodies the stock ledger. All
// stock mutations happen under one lock, which is the mutual-exclusion
// boundary that keeps concurrent checkouts from overselling.
type CatalogStore struct {
	mu         sync.RWMutex
	products   map[string]*catalog.Product
	productIDs []string
	families   map[string]*catalog.Family
	familyIDs  []string
	categories map[string]*catalog.Category
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		products:   make(map[string]*catalog.Product),
		families:   make(map[string]*catalog.Family),
		categories: make(map[string]*catalog.Category),
	}
}

func (s *CatalogStore) AddFamily(f *catalog.Family) {
	if f == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.families[f.ID]; !exists {
		s.familyIDs = append(s.familyIDs, f.ID)
	}
	s.families[f.ID] = f.Clone()
}

func (s *CatalogStore) AddCategory(c *catalog.Category) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c.Clone()
}

func (s *CatalogStore) AddProduct(p *catalog.Product) {
	if p == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[p.ID]; !exists {
		s.productIDs = append(s.productIDs, p.ID)
	}
	s.products[p.ID] = p.Clone()
	if c, ok := s.categories[p.CategoryID]; ok {
		c.AddProduct(p.ID)
	}
}

func (s *CatalogStore) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p.Clone(), nil
}

// ListProducts returns product clones in insertion order.
func (s *CatalogStore) ListProducts(ctx context.Context) []*catalog.Product {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		out = append(out, s.products[id].Clone())
	}
	return out
}

func (s *CatalogStore) ListFamilies(ctx context.Context) []*catalog.Family {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.Family, 0, len(s.familyIDs))
	for _, id := range s.familyIDs {
		out = append(out, s.families[id].Clone())
	}
	return out
}

func (s *CatalogStore) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return c.Clone(), nil
}

// Reserve atomically decrements stock, all or nothing.
func (s *CatalogStore) Reserve(ctx context.Context, productID string, quantity int) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return catalog.ErrNotFound
	}
	return p.Reserve(quantity)
}

// Release returns stock, clamped at zero by the product.
func (s *CatalogStore) Release(ctx context.Context, productID string, quantity int) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return catalog.ErrNotFound
	}
	p.Release(quantity)
	return nil
}

func (s *CatalogStore) Available(ctx context.Context, productID string, quantity int) (bool, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return false, catalog.ErrNotFound
	}
	return p.Available(quantity), nil
}

// SetStock overwrites the available quantity; this is the admin operation,
// not an additive adjustment.
func (s *CatalogStore) SetStock(ctx context.Context, productID string, quantity int) error {
	_ = ctx
	if quantity < 0 {
		return catalog.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return catalog.ErrNotFound
	}
	p.Stock = quantity
	return nil
}

var _ catalog.Ledger = (*CatalogStore)(nil)
