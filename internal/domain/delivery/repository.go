package delivery

import "context"

type Repository interface {
	Save(ctx context.Context, d *Delivery) error
	FindByID(ctx context.Context, id uint64) (*Delivery, error)
	FindByOrder(ctx context.Context, orderID string) (*Delivery, error)
}
