package customer

import "context"

type Repository interface {
	Save(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id string) (*Customer, error)
}
