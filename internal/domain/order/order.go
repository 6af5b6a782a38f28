package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tcsurf/surfstore/internal/domain/catalog"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrConflict          = errors.New("order: already exists")
	ErrInvalidQuantity   = errors.New("order: quantity must be greater than zero")
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// LineItem is a priced quantity of one product. Unit price and unit weight are
// snapshots taken at add time; later catalog changes do not affect them.
type LineItem struct {
	ProductID  string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	UnitWeight float64
	Subtotal   decimal.Decimal
}

// Order aggregates line items for one customer. Line items are owned
// exclusively by the order; payment and delivery are referenced by id.
type Order struct {
	ID         string
	CustomerID string
	Items      []LineItem
	Total      decimal.Decimal
	Status     Status
	PaymentID  string
	DeliveryID string
	CreatedAt  time.Time
}

func New(id, customerID string) *Order {
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Total:      decimal.Zero,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

// AddLineItem reserves stock through the ledger and appends a line item with
// the product's current price. Availability is re-checked here regardless of
// what the caller already verified; the reservation is all or nothing.
func (o *Order) AddLineItem(ctx context.Context, ledger catalog.Ledger, product *catalog.Product, quantity int) (*LineItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	ok, err := ledger.Available(ctx, product.ID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, catalog.ErrInsufficientStock
	}
	if err := ledger.Reserve(ctx, product.ID, quantity); err != nil {
		return nil, err
	}

	item := LineItem{
		ProductID:  product.ID,
		Name:       product.Name,
		Quantity:   quantity,
		UnitPrice:  product.Price,
		UnitWeight: product.ShippingWeight(),
	}
	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	o.Items = append(o.Items, item)
	o.recomputeTotal()
	return &o.Items[len(o.Items)-1], nil
}

func (o *Order) recomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.Total = total
}

// SetStatus applies the transition unconditionally; callers wanting guarded
// transitions use Transition instead.
func (o *Order) SetStatus(status Status) {
	o.Status = status
}

// Transition applies the transition only when the strict table allows it.
func (o *Order) Transition(status Status) error {
	if !ValidTransition(o.Status, status) {
		return ErrInvalidTransition
	}
	o.Status = status
	return nil
}

// ValidTransition reports whether the strict order lifecycle permits moving
// from one status to another. Cancellation is reachable from any state.
func ValidTransition(from, to Status) bool {
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusDispatched
	case StatusDispatched:
		return to == StatusDelivered
	}
	return false
}

// TotalWeight is the shipped weight of the order in kilograms.
func (o *Order) TotalWeight() float64 {
	weight := 0.0
	for _, item := range o.Items {
		weight += item.UnitWeight * float64(item.Quantity)
	}
	return weight
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	return &clone
}
