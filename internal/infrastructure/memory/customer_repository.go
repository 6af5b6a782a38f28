package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/tcsurf/surfstore/internal/domain/customer"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, c *domain.Customer) error {
	_ = ctx
	if c == nil || c.ID == "" {
		return fmt.Errorf("customer repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers[c.ID] = c.Clone()
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}
