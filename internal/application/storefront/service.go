package storefront

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tcsurf/surfstore/internal/domain/catalog"
	"github.com/tcsurf/surfstore/internal/domain/customer"
	"github.com/tcsurf/surfstore/internal/observability"
	"github.com/tcsurf/surfstore/internal/observability/logctx"
)

const componentStorefront = "storefront_service"

// Service covers the browsing and cart surface of the store: catalog lookups,
// per-customer carts, and the admin stock overwrite.
type Service struct {
	catalog           Catalog
	customers         customer.Repository
	carts             *Carts
	lowStockThreshold int
	log               observability.Logger
}

func NewService(cat Catalog, customers customer.Repository, carts *Carts, lowStockThreshold int, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		catalog:           cat,
		customers:         customers,
		carts:             carts,
		lowStockThreshold: lowStockThreshold,
		log:               logger.With(observability.F("component", componentStorefront)),
	}
}

func (s *Service) FindProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}

func (s *Service) FindCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// Families lists the catalog's top-level product families.
func (s *Service) Families(ctx context.Context) []*catalog.Family {
	return s.catalog.ListFamilies(ctx)
}

// ListProducts filters by family and/or category; empty ids mean no filter.
func (s *Service) ListProducts(ctx context.Context, familyID, categoryID string) ([]*catalog.Product, error) {
	all := s.catalog.ListProducts(ctx)
	if familyID == "" && categoryID == "" {
		return all, nil
	}

	var out []*catalog.Product
	for _, p := range all {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if familyID != "" {
			cat, err := s.catalog.GetCategory(ctx, p.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat.FamilyID != familyID {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// Search matches the keyword against product names and descriptions,
// case-insensitively.
func (s *Service) Search(ctx context.Context, keyword string) []*catalog.Product {
	keyword = strings.ToLower(keyword)
	var out []*catalog.Product
	for _, p := range s.catalog.ListProducts(ctx) {
		if strings.Contains(strings.ToLower(p.Name), keyword) ||
			strings.Contains(strings.ToLower(p.Description), keyword) {
			out = append(out, p)
		}
	}
	return out
}

// LowStock lists products whose stock has fallen under the configured threshold.
func (s *Service) LowStock(ctx context.Context) []*catalog.Product {
	var out []*catalog.Product
	for _, p := range s.catalog.ListProducts(ctx) {
		if p.Stock < s.lowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// InventoryValue is the sum of price times stock across the catalog.
func (s *Service) InventoryValue(ctx context.Context) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.catalog.ListProducts(ctx) {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total
}

// AddCartItem puts quantity units into the customer's cart after an
// availability check, returning the new total unit count.
func (s *Service) AddCartItem(ctx context.Context, customerID, productID string, quantity int) (int, error) {
	logger := logctx.FromOr(ctx, s.log)

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	c := s.carts.Get(customerID)
	if err := c.Add(product, quantity); err != nil {
		logger.Warn("cart_add_rejected",
			observability.F("product_id", productID),
			observability.F("quantity", quantity),
			observability.F("error", err.Error()),
		)
		return 0, err
	}

	logger.Info("cart_item_added",
		observability.F("product_id", productID),
		observability.F("quantity", quantity),
		observability.F("cart_count", c.Count()),
	)
	return c.Count(), nil
}

// UpdateCartItem sets an absolute quantity; zero or less removes the line.
func (s *Service) UpdateCartItem(ctx context.Context, customerID, productID string, quantity int) (int, error) {
	c := s.carts.Get(customerID)

	if quantity <= 0 {
		c.Remove(productID)
		return c.Count(), nil
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if err := c.Update(product, quantity); err != nil {
		return 0, err
	}
	return c.Count(), nil
}

func (s *Service) ApplyDiscount(ctx context.Context, customerID string, rate float64) {
	_ = ctx
	s.carts.Get(customerID).ApplyDiscount(rate)
}

type CartLine struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type CartView struct {
	CustomerID string
	Lines      []CartLine
	Count      int
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
}

// ViewCart renders the cart against current catalog prices. Lines whose
// product has vanished from the catalog are shown with a zero price.
func (s *Service) ViewCart(ctx context.Context, customerID string) (*CartView, error) {
	c := s.carts.Get(customerID)

	prices := make(map[string]decimal.Decimal, len(c.Items()))
	names := make(map[string]string)
	for _, item := range c.Items() {
		p, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			prices[item.ProductID] = decimal.Zero
			continue
		}
		prices[item.ProductID] = p.Price
		names[item.ProductID] = p.Name
	}
	priceOf := func(productID string) decimal.Decimal { return prices[productID] }

	view := &CartView{
		CustomerID: customerID,
		Count:      c.Count(),
		Subtotal:   c.Subtotal(priceOf),
		Total:      c.Total(priceOf),
	}
	for _, item := range c.Items() {
		view.Lines = append(view.Lines, CartLine{
			ProductID: item.ProductID,
			Name:      names[item.ProductID],
			Quantity:  item.Quantity,
			UnitPrice: prices[item.ProductID],
			Subtotal:  prices[item.ProductID].Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return view, nil
}

// SetStock overwrites a product's stock level (admin operation).
func (s *Service) SetStock(ctx context.Context, productID string, quantity int) error {
	logger := logctx.FromOr(ctx, s.log)
	if err := s.catalog.SetStock(ctx, productID, quantity); err != nil {
		return err
	}
	logger.Info("stock_overwritten",
		observability.F("product_id", productID),
		observability.F("quantity", quantity),
	)
	return nil
}

type InventoryLine struct {
	Product *catalog.Product
	Value   decimal.Decimal
}

// Inventory renders the admin stock view sorted by product id.
func (s *Service) Inventory(ctx context.Context) []InventoryLine {
	products := s.catalog.ListProducts(ctx)
	out := make([]InventoryLine, 0, len(products))
	for _, p := range products {
		out = append(out, InventoryLine{
			Product: p,
			Value:   p.Price.Mul(decimal.NewFromInt(int64(p.Stock))),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.ID < out[j].Product.ID })
	return out
}
