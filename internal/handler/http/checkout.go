package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/pkg/httputil"
)

// CheckoutHandler handles checkout and order history endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// OrderItemResponse is one purchased line of an order.
type OrderItemResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	TotalCents int64               `json:"total_cents"`
	CreatedAt  time.Time           `json:"created_at"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:     item.ProductID,
			Name:          item.Name,
			PriceCents:    item.PriceCents,
			Quantity:      item.Quantity,
			SubtotalCents: item.SubtotalCents,
		})
	}

	return OrderResponse{
		ID:         o.ID,
		Status:     o.Status,
		Items:      items,
		TotalCents: o.TotalCents,
		CreatedAt:  o.CreatedAt,
	}
}

// Summary handles GET /api/v1/checkout
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	summary, err := h.service.Summary(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summary)
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	order, err := h.service.PlaceOrder(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toOrderResponse(order))
}

// ListOrders handles GET /api/v1/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	orders, err := h.service.ListOrders(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}

	httputil.WriteJSON(w, http.StatusOK, out)
}

// GetOrder handles GET /api/v1/orders/{orderID}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	order, err := h.service.GetOrder(r.Context(), sess, chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}
