package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	appCheckout "github.com/tcsurf/surfstore/internal/application/checkout"
	appStorefront "github.com/tcsurf/surfstore/internal/application/storefront"
	appTracking "github.com/tcsurf/surfstore/internal/application/tracking"
	domainCart "github.com/tcsurf/surfstore/internal/domain/cart"
	domainCatalog "github.com/tcsurf/surfstore/internal/domain/catalog"
	domainCustomer "github.com/tcsurf/surfstore/internal/domain/customer"
	domainDelivery "github.com/tcsurf/surfstore/internal/domain/delivery"
	domainOrder "github.com/tcsurf/surfstore/internal/domain/order"
	domainPayment "github.com/tcsurf/surfstore/internal/domain/payment"
	"github.com/tcsurf/surfstore/internal/observability"
	"github.com/tcsurf/surfstore/internal/observability/logctx"
)

type Handler struct {
	storefront *appStorefront.Service
	checkout   *appCheckout.Service
	tracking   *appTracking.Service
	log        observability.Logger
	tel        observability.Telemetry
}

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
)

func NewHandler(storefront *appStorefront.Service, checkout *appCheckout.Service, tracking *appTracking.Service,
	logger observability.Logger, tel observability.Telemetry,
) *Handler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = observability.NopLogger()
	}
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	return &Handler{
		storefront: storefront,
		checkout:   checkout,
		tracking:   tracking,
		log:        baseLogger.With(observability.F("component", componentHTTPHandler)),
		tel:        tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// Wire each route with middlewares:
	// Trace → request logger → HTTP metrics → access log → handler
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)
	h.muxHandle(mux, http.MethodGet, "/families", h.handleListFamilies)
	h.muxHandle(mux, http.MethodGet, "/products", h.handleListProducts)
	h.muxHandle(mux, http.MethodGet, "/products/detail", h.handleProductDetail)
	h.muxHandle(mux, http.MethodGet, "/products/search", h.handleSearchProducts)
	h.muxHandle(mux, http.MethodPost, "/cart/items", h.handleAddCartItem)
	h.muxHandle(mux, http.MethodPost, "/cart/update", h.handleUpdateCartItem)
	h.muxHandle(mux, http.MethodPost, "/cart/discount", h.handleCartDiscount)
	h.muxHandle(mux, http.MethodGet, "/cart", h.handleViewCart)
	h.muxHandle(mux, http.MethodPost, "/checkout", h.handleCheckout)
	h.muxHandle(mux, http.MethodGet, "/orders", h.handleGetOrder)
	h.muxHandle(mux, http.MethodGet, "/orders/history", h.handleOrderHistory)
	h.muxHandle(mux, http.MethodPost, "/deliveries/status", h.handleDeliveryStatus)
	h.muxHandle(mux, http.MethodPost, "/payments/refund", h.handleRefund)
	h.muxHandle(mux, http.MethodGet, "/admin/inventory", h.handleInventory)
	h.muxHandle(mux, http.MethodPost, "/admin/stock", h.handleSetStock)
	h.muxHandle(mux, http.MethodGet, "/tracking/top", h.handleTopProducts)

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Store stable route template for low-cardinality labels
		ctx := contextWithRoute(r.Context(), route)
		r = r.WithContext(ctx)

		wrapped := h.withTrace(
			RequestLoggerMiddleware(
				logctx.FromOr(ctx, h.log),
				func(r *http.Request) string {
					return r.Header.Get(headerRequestID)
				},
			)(
				h.withHTTPMetrics(
					h.withAccessLog(http.HandlerFunc(handler)),
				),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

type productResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Price            string `json:"price"`
	Stock            int    `json:"stock"`
	CategoryID       string `json:"category_id"`
	Kind             string `json:"kind"`
	ShippingWeightKg string `json:"shipping_weight_kg"`
	CareInstructions string `json:"care_instructions"`
}

func toProductResponse(p *domainCatalog.Product) productResponse {
	return productResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price.StringFixed(2),
		Stock:            p.Stock,
		CategoryID:       p.CategoryID,
		Kind:             string(p.Kind),
		ShippingWeightKg: strconv.FormatFloat(p.ShippingWeight(), 'f', -1, 64),
		CareInstructions: p.CareInstructions(),
	}
}

type familyResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CategoryIDs []string `json:"category_ids"`
}

func (h *Handler) handleListFamilies(w http.ResponseWriter, r *http.Request) {
	families := h.storefront.Families(r.Context())
	out := make([]familyResponse, 0, len(families))
	for _, f := range families {
		out = append(out, familyResponse{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			CategoryIDs: f.CategoryIDs,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	familyID := r.URL.Query().Get("family_id")
	categoryID := r.URL.Query().Get("category_id")

	products, err := h.storefront.ListProducts(r.Context(), familyID, categoryID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type productDetailResponse struct {
	productResponse
	BoardSpecs    string `json:"board_specs,omitempty"`
	ThermalRating string `json:"thermal_rating,omitempty"`
}

func (h *Handler) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	p, err := h.storefront.FindProduct(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productDetailResponse{
		productResponse: toProductResponse(p),
		BoardSpecs:      p.BoardSpecs(),
		ThermalRating:   p.ThermalRating(),
	})
}

func (h *Handler) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	products := h.storefront.Search(r.Context(), keyword)
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type cartItemRequest struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

type cartCountResponse struct {
	Success   bool `json:"success"`
	CartCount int  `json:"cart_count"`
}

func (h *Handler) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	count, err := h.storefront.AddCartItem(r.Context(), req.CustomerID, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartCountResponse{Success: true, CartCount: count})
}

func (h *Handler) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	count, err := h.storefront.UpdateCartItem(r.Context(), req.CustomerID, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartCountResponse{Success: true, CartCount: count})
}

type cartDiscountRequest struct {
	CustomerID string  `json:"customer_id"`
	Rate       float64 `json:"rate"`
}

func (h *Handler) handleCartDiscount(w http.ResponseWriter, r *http.Request) {
	var req cartDiscountRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.storefront.ApplyDiscount(r.Context(), req.CustomerID, req.Rate)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type cartLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type cartResponse struct {
	CustomerID string             `json:"customer_id"`
	Lines      []cartLineResponse `json:"lines"`
	Count      int                `json:"count"`
	Subtotal   string             `json:"subtotal"`
	Total      string             `json:"total"`
}

func (h *Handler) handleViewCart(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")

	view, err := h.storefront.ViewCart(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := cartResponse{
		CustomerID: view.CustomerID,
		Count:      view.Count,
		Subtotal:   view.Subtotal.StringFixed(2),
		Total:      view.Total.StringFixed(2),
		Lines:      make([]cartLineResponse, 0, len(view.Lines)),
	}
	for _, line := range view.Lines {
		resp.Lines = append(resp.Lines, cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Subtotal:  line.Subtotal.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type checkoutCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type checkoutRequest struct {
	CustomerID     string                   `json:"customer_id"`
	Customer       *checkoutCustomerRequest `json:"customer"`
	PaymentMethod  string                   `json:"payment_method"`
	CardNumber     string                   `json:"card_number"`
	CardType       string                   `json:"card_type"`
	Email          string                   `json:"email"`
	DeviceID       string                   `json:"device_id"`
	DeliveryMethod string                   `json:"delivery_method"`
	Destination    string                   `json:"destination"`
}

type lineItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type orderResponse struct {
	OrderID    string             `json:"order_id"`
	CustomerID string             `json:"customer_id"`
	Status     string             `json:"status"`
	Total      string             `json:"total"`
	Items      []lineItemResponse `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
}

type paymentResponse struct {
	PaymentID      string `json:"payment_id"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	Amount         string `json:"amount"`
	Fee            string `json:"fee"`
	TotalCharged   string `json:"total_charged"`
	ProcessingTime string `json:"processing_time"`
}

type deliveryResponse struct {
	TrackingNumber string     `json:"tracking_number"`
	Method         string     `json:"method"`
	MethodLabel    string     `json:"method_label"`
	Status         string     `json:"status"`
	Destination    string     `json:"destination"`
	ShippingCost   string     `json:"shipping_cost"`
	EstimatedDays  int        `json:"estimated_days"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

type checkoutResponse struct {
	Order        orderResponse    `json:"order"`
	Payment      paymentResponse  `json:"payment"`
	Delivery     deliveryResponse `json:"delivery"`
	PaymentOK    bool             `json:"payment_ok"`
	SkippedLines []string         `json:"skipped_lines,omitempty"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	resp := orderResponse{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Total:      o.Total.StringFixed(2),
		CreatedAt:  o.CreatedAt,
		Items:      make([]lineItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, lineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal.StringFixed(2),
		})
	}
	return resp
}

func toPaymentResponse(p *domainPayment.Payment) paymentResponse {
	return paymentResponse{
		PaymentID:      p.ID,
		Method:         string(p.Method),
		Status:         string(p.Status),
		Amount:         p.Amount.StringFixed(2),
		Fee:            p.Fee().StringFixed(2),
		TotalCharged:   p.TotalAmount().StringFixed(2),
		ProcessingTime: p.ProcessingTime(),
	}
}

func toDeliveryResponse(d *domainDelivery.Delivery, shippingCost string) deliveryResponse {
	return deliveryResponse{
		TrackingNumber: d.TrackingNumber,
		Method:         string(d.Method),
		MethodLabel:    d.MethodLabel(),
		Status:         string(d.Status),
		Destination:    d.Destination,
		ShippingCost:   shippingCost,
		EstimatedDays:  d.EstimatedDays(),
		DeliveredAt:    d.DeliveredAt,
	}
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	input := appCheckout.Input{
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
		PaymentDetails: domainPayment.Details{
			CardNumber: req.CardNumber,
			CardType:   req.CardType,
			Email:      req.Email,
			DeviceID:   req.DeviceID,
		},
		DeliveryMethod: req.DeliveryMethod,
		Destination:    req.Destination,
	}
	if req.Customer != nil {
		input.Customer = &appCheckout.CustomerFields{
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Email:     req.Customer.Email,
			Phone:     req.Customer.Phone,
			Address:   req.Customer.Address,
		}
	}

	result, err := h.checkout.Checkout(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Order:        toOrderResponse(result.Order),
		Payment:      toPaymentResponse(result.Payment),
		Delivery:     toDeliveryResponse(result.Delivery, result.ShippingCost.StringFixed(2)),
		PaymentOK:    result.PaymentOK,
		SkippedLines: result.SkippedLines,
	})
}

type orderViewResponse struct {
	Order    orderResponse     `json:"order"`
	Payment  *paymentResponse  `json:"payment,omitempty"`
	Delivery *deliveryResponse `json:"delivery,omitempty"`
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id")

	view, err := h.checkout.GetOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := orderViewResponse{Order: toOrderResponse(view.Order)}
	if view.Payment != nil {
		p := toPaymentResponse(view.Payment)
		resp.Payment = &p
	}
	if view.Delivery != nil {
		d := toDeliveryResponse(view.Delivery, view.Delivery.ShippingCostFor(view.Order).StringFixed(2))
		resp.Delivery = &d
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")

	cust, err := h.storefront.FindCustomer(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	orders, err := h.checkout.ListOrders(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"customer_id": cust.ID,
		"customer":    cust.FullName(),
		"orders":      out,
	})
}

type deliveryStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (h *Handler) handleDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	var req deliveryStatusRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	status, err := domainDelivery.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	del, err := h.checkout.UpdateDeliveryStatus(r.Context(), req.OrderID, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"tracking_number": del.TrackingNumber,
		"status":          string(del.Status),
		"tracking":        del.Track(),
	})
}

type refundRequest struct {
	OrderID string `json:"order_id"`
}

func (h *Handler) handleRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ok, err := h.checkout.RefundPayment(r.Context(), req.OrderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"refunded": ok})
}

type inventoryLineResponse struct {
	Product productResponse `json:"product"`
	Value   string          `json:"value"`
}

type inventoryResponse struct {
	Lines      []inventoryLineResponse `json:"lines"`
	TotalValue string                  `json:"total_value"`
	LowStock   []productResponse       `json:"low_stock"`
}

func (h *Handler) handleInventory(w http.ResponseWriter, r *http.Request) {
	lines := h.storefront.Inventory(r.Context())
	resp := inventoryResponse{
		Lines:      make([]inventoryLineResponse, 0, len(lines)),
		TotalValue: h.storefront.InventoryValue(r.Context()).StringFixed(2),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, inventoryLineResponse{
			Product: toProductResponse(line.Product),
			Value:   line.Value.StringFixed(2),
		})
	}
	for _, p := range h.storefront.LowStock(r.Context()) {
		resp.LowStock = append(resp.LowStock, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

type setStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) handleSetStock(w http.ResponseWriter, r *http.Request) {
	var req setStockRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.storefront.SetStock(r.Context(), req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}
	writeJSON(w, http.StatusOK, h.tracking.Top(n))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainCatalog.ErrNotFound),
		errors.Is(err, domainOrder.ErrNotFound),
		errors.Is(err, domainCustomer.ErrNotFound),
		errors.Is(err, domainPayment.ErrNotFound),
		errors.Is(err, domainDelivery.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainCatalog.ErrInsufficientStock),
		errors.Is(err, domainCatalog.ErrInvalidQuantity),
		errors.Is(err, domainCart.ErrEmpty),
		errors.Is(err, domainCart.ErrInvalidQuantity),
		errors.Is(err, domainOrder.ErrInvalidQuantity),
		errors.Is(err, domainOrder.ErrInvalidTransition),
		errors.Is(err, domainPayment.ErrUnknownMethod),
		errors.Is(err, domainDelivery.ErrUnknownMethod),
		errors.Is(err, domainDelivery.ErrUnknownStatus),
		errors.Is(err, domainCustomer.ErrNameRequired),
		errors.Is(err, appCheckout.ErrCustomerRequired):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
