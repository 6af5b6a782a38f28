package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/tcsurf/surfstore/internal/domain/delivery"
)

type DeliveryRepository struct {
	mu      sync.RWMutex
	byID    map[uint64]*domain.Delivery
	byOrder map[string]*domain.Delivery
}

func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{
		byID:    make(map[uint64]*domain.Delivery),
		byOrder: make(map[string]*domain.Delivery),
	}
}

func (r *DeliveryRepository) Save(ctx context.Context, d *domain.Delivery) error {
	_ = ctx
	if d == nil || d.OrderID == "" {
		return fmt.Errorf("delivery repository: order id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := d.Clone()
	r.byID[d.ID] = clone
	r.byOrder[d.OrderID] = clone
	return nil
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id uint64) (*domain.Delivery, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d.Clone(), nil
}

func (r *DeliveryRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Delivery, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byOrder[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d.Clone(), nil
}
