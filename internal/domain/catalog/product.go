package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("catalog: product not found")
	ErrInvalidPrice      = errors.New("catalog: price must be zero or greater")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Kind identifies the closed set of product variants carried by the store.
type Kind string

const (
	KindSurfboard Kind = "surfboard"
	KindWetsuit   Kind = "wetsuit"
	KindAccessory Kind = "accessory"
)

type BoardSpec struct {
	Length   string
	Type     string
	FinSetup string
}

type SuitSpec struct {
	Thickness string
	Type      string
	Material  string
}

type AccessorySpec struct {
	Type          string
	Compatibility string
}

// Product is a catalog entry plus its available stock. Stock is only mutated
// through Reserve, Release, and SetStock; it never goes negative.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  string
	Kind        Kind

	Board     *BoardSpec
	Suit      *SuitSpec
	Accessory *AccessorySpec
}

func NewSurfboard(id, name, description string, price decimal.Decimal, stock int, categoryID string, spec BoardSpec) (*Product, error) {
	p, err := newProduct(id, name, description, price, stock, categoryID, KindSurfboard)
	if err != nil {
		return nil, err
	}
	p.Board = &spec
	return p, nil
}

func NewWetsuit(id, name, description string, price decimal.Decimal, stock int, categoryID string, spec SuitSpec) (*Product, error) {
	p, err := newProduct(id, name, description, price, stock, categoryID, KindWetsuit)
	if err != nil {
		return nil, err
	}
	p.Suit = &spec
	return p, nil
}

func NewAccessory(id, name, description string, price decimal.Decimal, stock int, categoryID string, spec AccessorySpec) (*Product, error) {
	p, err := newProduct(id, name, description, price, stock, categoryID, KindAccessory)
	if err != nil {
		return nil, err
	}
	if spec.Compatibility == "" {
		spec.Compatibility = "Universal"
	}
	p.Accessory = &spec
	return p, nil
}

func newProduct(id, name, description string, price decimal.Decimal, stock int, categoryID string, kind Kind) (*Product, error) {
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, fmt.Errorf("catalog: negative initial stock: %w", ErrInvalidQuantity)
	}
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		Kind:        kind,
	}, nil
}

// Available reports whether quantity units can currently be reserved.
func (p *Product) Available(quantity int) bool {
	return quantity <= p.Stock
}

// Reserve decrements stock by quantity, all or nothing.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

// Release returns quantity units to stock. The result is clamped at zero so a
// bogus negative quantity can never drive stock below zero.
func (p *Product) Release(quantity int) {
	p.Stock += quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
}

var accessoryWeights = map[string]float64{
	"leash":       0.2,
	"wax":         0.1,
	"fins":        0.5,
	"tshirt":      0.3,
	"boardshorts": 0.4,
}

// ShippingWeight returns the unit shipping weight in kilograms, derived from
// the product kind and its spec.
func (p *Product) ShippingWeight() float64 {
	switch p.Kind {
	case KindSurfboard:
		const base = 3.0
		boardType := strings.ToLower(p.Board.Type)
		switch {
		case strings.Contains(boardType, "longboard"):
			return base + 2.0
		case strings.Contains(boardType, "shortboard"):
			return base + 1.0
		default: // SUP
			return base + 4.0
		}
	case KindWetsuit:
		if strings.Contains(strings.ToLower(p.Suit.Type), "full") {
			return 1.5
		}
		return 1.0
	case KindAccessory:
		if w, ok := accessoryWeights[strings.ToLower(p.Accessory.Type)]; ok {
			return w
		}
		return 0.3
	}
	return 0
}

// CareInstructions returns the customer-facing care text for the product.
func (p *Product) CareInstructions() string {
	switch p.Kind {
	case KindSurfboard:
		return "Rinse with fresh water after use. Store in a cool, dry place away from direct sunlight."
	case KindWetsuit:
		return fmt.Sprintf("Machine wash cold with %s-friendly detergent. Hang dry only.", p.Suit.Material)
	case KindAccessory:
		switch strings.ToLower(p.Accessory.Type) {
		case "tshirt", "boardshorts":
			return "Machine wash cold, tumble dry low."
		case "wax":
			return "Store in cool place to prevent melting."
		default:
			return "Rinse with fresh water after use."
		}
	}
	return ""
}

// BoardSpecs describes a surfboard's dimensions; empty for other kinds.
func (p *Product) BoardSpecs() string {
	if p.Kind != KindSurfboard || p.Board == nil {
		return ""
	}
	return fmt.Sprintf("Length: %s, Type: %s, Fins: %s", p.Board.Length, p.Board.Type, p.Board.FinSetup)
}

var thermalRatings = map[string]string{
	"3/2mm": "Warm water (18-23°C)",
	"4/3mm": "Cool water (12-18°C)",
	"5/4mm": "Cold water (8-14°C)",
}

// ThermalRating maps a wetsuit thickness to its rated water temperature.
func (p *Product) ThermalRating() string {
	if p.Kind != KindWetsuit || p.Suit == nil {
		return ""
	}
	if r, ok := thermalRatings[p.Suit.Thickness]; ok {
		return r
	}
	return "General use"
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Board != nil {
		b := *p.Board
		clone.Board = &b
	}
	if p.Suit != nil {
		s := *p.Suit
		clone.Suit = &s
	}
	if p.Accessory != nil {
		a := *p.Accessory
		clone.Accessory = &a
	}
	return &clone
}

// Ledger is the stock reservation boundary. Implementations serialize access
// so concurrent checkouts cannot oversell a product.
type Ledger interface {
	Reserve(ctx context.Context, productID string, quantity int) error
	Release(ctx context.Context, productID string, quantity int) error
	Available(ctx context.Context, productID string, quantity int) (bool, error)
}
