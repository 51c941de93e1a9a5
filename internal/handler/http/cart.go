package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/internal/storage"
	"github.com/utafrali/glamstore/pkg/httputil"
	"github.com/utafrali/glamstore/pkg/validator"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	service *service.CartService
	images  storage.Storage
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, images storage.Storage, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		images:  images,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityRequest is the JSON request body for changing a line's
// quantity. A quantity of zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse is one line of the cart view.
type CartLineResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotal_cents"`
	ImageURL      string `json:"image_url,omitempty"`
}

// CartResponse is the full cart view. Lines are sorted by product ID.
type CartResponse struct {
	Items      []CartLineResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	TotalCents int64              `json:"total_cents"`
}

func (h *CartHandler) toCartResponse(cart domain.Cart) CartResponse {
	items := make([]CartLineResponse, 0, len(cart))
	for _, line := range cart {
		items = append(items, CartLineResponse{
			ProductID:     line.ProductID,
			Name:          line.Name,
			PriceCents:    line.PriceCents,
			Quantity:      line.Quantity,
			SubtotalCents: line.PriceCents * int64(line.Quantity),
			ImageURL:      h.images.URL(line.Image),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})

	return CartResponse{
		Items:      items,
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.TotalCents(),
	}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.toCartResponse(cart))
}

// GetCount handles GET /api/v1/cart/count. Unlike the other cart endpoints
// it is open to guests and reports 0 for a fresh session.
func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"count": h.service.Count(r.Context(), sess)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sess := SessionFromContext(r.Context())

	cart, err := h.service.AddItem(r.Context(), sess, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.toCartResponse(cart))
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	sess := SessionFromContext(r.Context())

	cart, err := h.service.UpdateQuantity(r.Context(), sess, chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.toCartResponse(cart))
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	cart, err := h.service.RemoveItem(r.Context(), sess, chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.toCartResponse(cart))
}
