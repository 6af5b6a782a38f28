package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	domcart "github.com/tcsurf/surfstore/internal/domain/cart"
	"github.com/tcsurf/surfstore/internal/domain/catalog"
	"github.com/tcsurf/surfstore/internal/domain/customer"
	domdelivery "github.com/tcsurf/surfstore/internal/domain/delivery"
	domorder "github.com/tcsurf/surfstore/internal/domain/order"
	domoutbox "github.com/tcsurf/surfstore/internal/domain/outbox"
	dompayment "github.com/tcsurf/surfstore/internal/domain/payment"
	"github.com/tcsurf/surfstore/internal/observability"
	"github.com/tcsurf/surfstore/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	checkoutService = "checkout_service"
	useCaseCheckout = "checkout.place_order"
	spanPrefix      = "UC."
)

var (
	ErrEmptyCart        = domcart.ErrEmpty
	ErrCustomerRequired = errors.New("checkout: customer id or contact fields required")
)

// Config toggles the stricter interpretations of the checkout contract. Both
// default to the permissive source behavior.
type Config struct {
	// StrictAvailability aborts the whole checkout when any cart line has
	// lost availability, releasing whatever was already reserved. The
	// default silently skips the line.
	StrictAvailability bool
	// StrictTransitions rejects delivery-driven order transitions that the
	// lifecycle table does not permit. The default applies them untouched.
	StrictTransitions bool
}

// Service is the only place where orders, payments, and deliveries meet.
type Service struct {
	catalog    Catalog
	carts      CartProvider
	customers  customer.Repository
	orders     domorder.Repository
	payments   dompayment.Repository
	deliveries domdelivery.Repository
	ids        IDGenerator
	seq        DeliverySequence
	publisher  domoutbox.Publisher
	cfg        Config
	tel        observability.Telemetry

	log          observability.Logger
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	skipCounter  observability.Counter
}

func NewService(
	cat Catalog,
	carts CartProvider,
	customers customer.Repository,
	orders domorder.Repository,
	payments dompayment.Repository,
	deliveries domdelivery.Repository,
	ids IDGenerator,
	seq DeliverySequence,
	publisher domoutbox.Publisher,
	cfg Config,
	tel observability.Telemetry,
) *Service {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	return &Service{
		catalog:      cat,
		carts:        carts,
		customers:    customers,
		orders:       orders,
		payments:     payments,
		deliveries:   deliveries,
		ids:          ids,
		seq:          seq,
		publisher:    publisher,
		cfg:          cfg,
		tel:          tel,
		log:          tel.Logger().With(observability.F("component", checkoutService)),
		reqCounter:   tel.Counter(observability.MUsecaseRequests),
		durHistogram: tel.Histogram(observability.MUsecaseDuration),
		skipCounter:  tel.Counter(observability.MCheckoutLineSkips),
	}
}

// CustomerFields creates a new customer record at checkout time, the way a
// guest checkout does.
type CustomerFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

type Input struct {
	// CustomerID selects an existing customer; leave empty and fill Customer
	// for guest checkout.
	CustomerID string
	Customer   *CustomerFields

	PaymentMethod  string
	PaymentDetails dompayment.Details

	// DeliveryMethod defaults to standard; Destination defaults to the
	// customer's address.
	DeliveryMethod string
	Destination    string
}

type Result struct {
	Order        *domorder.Order
	Payment      *dompayment.Payment
	Delivery     *domdelivery.Delivery
	PaymentOK    bool
	Fee          decimal.Decimal
	ShippingCost decimal.Decimal
	SkippedLines []string // product ids that lost availability and were skipped
}

// Checkout turns the customer's cart into an order, processes exactly one
// payment, and attaches exactly one delivery. The delivery is created even
// when the payment fails; the cart is cleared unconditionally.
func (s *Service) Checkout(ctx context.Context, input Input) (_ *Result, err error) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCaseCheckout))

	ctx, span := s.tel.Tracer().Start(ctx, spanPrefix+"Checkout",
		attribute.String("use_case", useCaseCheckout),
		attribute.String("checkout.customer_id", input.CustomerID),
		attribute.String("checkout.payment_method", input.PaymentMethod),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		lat := time.Since(start).Seconds()
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}
		if s.reqCounter != nil {
			s.reqCounter.Add(1,
				observability.L("use_case", useCaseCheckout),
				observability.L("outcome", outcome),
			)
		}
		if s.durHistogram != nil {
			s.durHistogram.Observe(lat, observability.L("use_case", useCaseCheckout))
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	cust, err := s.resolveCustomer(ctx, input)
	if err != nil {
		outcome, statusText = "error", "CUSTOMER_INVALID"
		return nil, err
	}

	c := s.carts.Get(cust.ID)
	if c.IsEmpty() {
		outcome, statusText = "error", "CART_EMPTY"
		return nil, ErrEmptyCart
	}

	method, err := dompayment.ParseMethod(input.PaymentMethod)
	if err != nil {
		outcome, statusText = "error", "PAYMENT_METHOD_INVALID"
		return nil, err
	}

	deliveryMethod := domdelivery.MethodStandard
	if input.DeliveryMethod != "" {
		deliveryMethod, err = domdelivery.ParseMethod(input.DeliveryMethod)
		if err != nil {
			outcome, statusText = "error", "DELIVERY_METHOD_INVALID"
			return nil, err
		}
	}

	ord := domorder.New(s.ids.NewID(), cust.ID)
	skipped, err := s.fillOrder(ctx, ord, c)
	if err != nil {
		// Strict abort: reservations were unwound and the cart is kept for retry.
		outcome, statusText = "error", "AVAILABILITY_LOST"
		return nil, err
	}

	pay, err := dompayment.New(s.ids.NewID(), ord, method, input.PaymentDetails)
	if err != nil {
		outcome, statusText = "error", "PAYMENT_INVALID"
		return nil, err
	}
	paid := pay.Process(ord)
	if !paid {
		logger.Warn("payment_declined",
			observability.F("order_id", ord.ID),
			observability.F("method", string(method)),
		)
	}
	ord.PaymentID = pay.ID

	destination := input.Destination
	if destination == "" {
		destination = cust.Address
	}
	del, err := domdelivery.New(s.seq.Next(), ord, deliveryMethod, destination)
	if err != nil {
		outcome, statusText = "error", "DELIVERY_INVALID"
		return nil, err
	}
	ord.DeliveryID = strconv.FormatUint(del.ID, 10)

	// Cart empties whether or not the payment went through.
	c.Clear()

	cust.AddOrder(ord.ID)
	if err := s.customers.Save(ctx, cust); err != nil {
		outcome, statusText = "error", "CUSTOMER_SAVE_FAILED"
		return nil, fmt.Errorf("checkout: save customer: %w", err)
	}
	if err := s.orders.Save(ctx, ord); err != nil {
		outcome, statusText = "error", "ORDER_SAVE_FAILED"
		return nil, fmt.Errorf("checkout: save order: %w", err)
	}
	if err := s.payments.Save(ctx, pay); err != nil {
		outcome, statusText = "error", "PAYMENT_SAVE_FAILED"
		return nil, fmt.Errorf("checkout: save payment: %w", err)
	}
	if err := s.deliveries.Save(ctx, del); err != nil {
		outcome, statusText = "error", "DELIVERY_SAVE_FAILED"
		return nil, fmt.Errorf("checkout: save delivery: %w", err)
	}

	s.publish(ctx, domorder.NewOrderPlacedEvent(ord))
	s.publish(ctx, dompayment.NewPaymentProcessedEvent(pay))

	logger.Info("checkout_complete",
		observability.F("order_id", ord.ID),
		observability.F("customer_id", cust.ID),
		observability.F("total", ord.Total.String()),
		observability.F("paid", paid),
		observability.F("lines", len(ord.Items)),
		observability.F("skipped", len(skipped)),
	)

	return &Result{
		Order:        ord,
		Payment:      pay,
		Delivery:     del,
		PaymentOK:    paid,
		Fee:          pay.Fee(),
		ShippingCost: del.ShippingCostFor(ord),
		SkippedLines: skipped,
	}, nil
}

// fillOrder moves cart lines onto the order, reserving stock per line. Lines
// that lost availability are skipped by default; in strict mode the whole
// order unwinds and the reservation of every earlier line is released.
func (s *Service) fillOrder(ctx context.Context, ord *domorder.Order, c *domcart.Cart) ([]string, error) {
	var skipped []string
	for _, item := range c.Items() {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
		if err == nil {
			_, err = ord.AddLineItem(ctx, s.catalog, product, item.Quantity)
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, catalog.ErrInsufficientStock) && !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}

		if s.skipCounter != nil {
			s.skipCounter.Add(1, observability.L("reason", "availability_lost"))
		}
		if s.cfg.StrictAvailability {
			s.unwind(ctx, ord)
			return nil, fmt.Errorf("checkout: %s: %w", item.ProductID, catalog.ErrInsufficientStock)
		}
		skipped = append(skipped, item.ProductID)
	}
	return skipped, nil
}

func (s *Service) unwind(ctx context.Context, ord *domorder.Order) {
	for _, item := range ord.Items {
		if err := s.catalog.Release(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.Error("reservation_release_failed",
				observability.F("product_id", item.ProductID),
				observability.F("error", err.Error()),
			)
		}
	}
}

func (s *Service) resolveCustomer(ctx context.Context, input Input) (*customer.Customer, error) {
	if input.CustomerID != "" {
		return s.customers.FindByID(ctx, input.CustomerID)
	}
	if input.Customer == nil {
		return nil, ErrCustomerRequired
	}
	f := input.Customer
	return customer.New(s.ids.NewID(), f.FirstName, f.LastName, f.Email, f.Phone, f.Address)
}

func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err.Error()),
		)
	}
}

// View composes an order with its payment and delivery for read access.
type View struct {
	Order    *domorder.Order
	Payment  *dompayment.Payment
	Delivery *domdelivery.Delivery
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*View, error) {
	ord, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view := &View{Order: ord}
	if pay, err := s.payments.FindByOrder(ctx, orderID); err == nil {
		view.Payment = pay
	}
	if del, err := s.deliveries.FindByOrder(ctx, orderID); err == nil {
		view.Delivery = del
	}
	return view, nil
}

// ListOrders returns the customer's orders, oldest first.
func (s *Service) ListOrders(ctx context.Context, customerID string) ([]*domorder.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// UpdateDeliveryStatus moves a delivery through its lifecycle. Dispatched and
// delivered drag the order along; strict mode rejects drags the order
// lifecycle table does not allow.
func (s *Service) UpdateDeliveryStatus(ctx context.Context, orderID string, status domdelivery.Status) (*domdelivery.Delivery, error) {
	logger := logctx.FromOr(ctx, s.log)

	del, err := s.deliveries.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ord, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.cfg.StrictTransitions {
		if target, drags := orderStatusFor(status); drags && !domorder.ValidTransition(ord.Status, target) {
			return nil, domorder.ErrInvalidTransition
		}
	}

	del.UpdateStatus(status, ord)

	if err := s.deliveries.Save(ctx, del); err != nil {
		return nil, fmt.Errorf("delivery update: save delivery: %w", err)
	}
	if err := s.orders.Update(ctx, ord); err != nil {
		return nil, fmt.Errorf("delivery update: save order: %w", err)
	}

	s.publish(ctx, domdelivery.NewDeliveryStatusChangedEvent(del))

	logger.Info("delivery_status_updated",
		observability.F("order_id", orderID),
		observability.F("tracking", del.TrackingNumber),
		observability.F("status", string(status)),
	)
	return del, nil
}

func orderStatusFor(s domdelivery.Status) (domorder.Status, bool) {
	switch s {
	case domdelivery.StatusDispatched:
		return domorder.StatusDispatched, true
	case domdelivery.StatusDelivered:
		return domorder.StatusDelivered, true
	}
	return "", false
}

// RefundPayment attempts a refund on the order's active payment. It reports
// false, with no state change, unless the payment is currently completed.
func (s *Service) RefundPayment(ctx context.Context, orderID string) (bool, error) {
	pay, err := s.payments.FindByOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	if !pay.Refund() {
		return false, nil
	}
	if err := s.payments.Save(ctx, pay); err != nil {
		return false, fmt.Errorf("refund: save payment: %w", err)
	}
	return true, nil
}
