package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tcsurf/surfstore/internal/domain/order"
)

var (
	ErrNotFound      = errors.New("delivery: not found")
	ErrUnknownMethod = errors.New("delivery: unknown method")
	ErrUnknownStatus = errors.New("delivery: unknown status")
)

type Method string

const (
	MethodStandard Method = "standard"
	MethodExpress  Method = "express"
	MethodPickup   Method = "pickup"
)

func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodStandard:
		return MethodStandard, nil
	case MethodExpress:
		return MethodExpress, nil
	case MethodPickup:
		return MethodPickup, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

type Status string

const (
	StatusPreparing  Status = "preparing"
	StatusDispatched Status = "dispatched"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
	StatusFailed     Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPreparing:
		return StatusPreparing, nil
	case StatusDispatched:
		return StatusDispatched, nil
	case StatusInTransit:
		return StatusInTransit, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusFailed:
		return StatusFailed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Delivery is one shipment (or pickup) for an order. IDs are sequential so the
// tracking number can embed a zero-padded numeric form.
type Delivery struct {
	ID             uint64
	OrderID        string
	Method         Method
	Destination    string
	TrackingNumber string
	Status         Status
	DeliveredAt    *time.Time
}

// capability maps a method to its shipping tariff and descriptive attributes.
type capability struct {
	prefix    string
	label     string
	base      decimal.Decimal
	threshold float64 // kg above which the surcharge applies
	perKg     decimal.Decimal
	days      int
}

var capabilities = map[Method]capability{
	MethodStandard: {
		prefix:    "STD",
		label:     "Standard Delivery",
		base:      decimal.RequireFromString("5.99"),
		threshold: 5.0,
		perKg:     decimal.RequireFromString("2.0"),
		days:      5,
	},
	MethodExpress: {
		prefix:    "EXP",
		label:     "Express Delivery",
		base:      decimal.RequireFromString("15.99"),
		threshold: 3.0,
		perKg:     decimal.RequireFromString("3.0"),
		days:      2,
	},
	MethodPickup: {
		prefix: "PU",
		label:  "Store Pickup",
		base:   decimal.Zero,
		days:   1,
	},
}

// New creates a delivery bound to the order. Destination is a street address,
// or the named pickup location for the pickup method.
func New(id uint64, o *order.Order, method Method, destination string) (*Delivery, error) {
	c, ok := capabilities[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return &Delivery{
		ID:             id,
		OrderID:        o.ID,
		Method:         method,
		Destination:    destination,
		TrackingNumber: fmt.Sprintf("%s%06d", c.prefix, id),
		Status:         StatusPreparing,
	}, nil
}

// ShippingCost computes the tariff for the given shipped weight in kilograms:
// a flat base plus a per-kilogram surcharge over the method's threshold.
func (d *Delivery) ShippingCost(weight float64) decimal.Decimal {
	c := capabilities[d.Method]
	cost := c.base
	if c.threshold > 0 && weight > c.threshold {
		over := decimal.NewFromFloat(weight - c.threshold)
		cost = cost.Add(over.Mul(c.perKg))
	}
	return cost
}

// ShippingCostFor computes the tariff for the order's total shipped weight.
func (d *Delivery) ShippingCostFor(o *order.Order) decimal.Decimal {
	return d.ShippingCost(o.TotalWeight())
}

func (d *Delivery) EstimatedDays() int {
	return capabilities[d.Method].days
}

func (d *Delivery) MethodLabel() string {
	return capabilities[d.Method].label
}

// UpdateStatus moves the delivery to the given status. Dispatched and
// delivered additionally drive the owning order's lifecycle; delivered also
// stamps the delivery timestamp. Other statuses touch the delivery only.
func (d *Delivery) UpdateStatus(status Status, o *order.Order) {
	d.Status = status
	switch status {
	case StatusDispatched:
		o.SetStatus(order.StatusDispatched)
	case StatusDelivered:
		now := time.Now().UTC()
		d.DeliveredAt = &now
		o.SetStatus(order.StatusDelivered)
	}
}

// Track renders the customer-facing tracking line.
func (d *Delivery) Track() string {
	return fmt.Sprintf("Tracking %s: %s", d.TrackingNumber, d.Status)
}

func (d *Delivery) Clone() *Delivery {
	if d == nil {
		return nil
	}
	clone := *d
	if d.DeliveredAt != nil {
		t := *d.DeliveredAt
		clone.DeliveredAt = &t
	}
	return &clone
}
