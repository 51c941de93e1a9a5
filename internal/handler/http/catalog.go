package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/internal/storage"
	"github.com/utafrali/glamstore/pkg/httputil"
)

// CatalogHandler handles product browsing endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	images  storage.Storage
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, images storage.Storage, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		images:  images,
		logger:  logger,
	}
}

// ProductResponse is the public view of a product. Prices are cents.
type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"price_cents"`
	Category     string `json:"category"`
	Featured     bool   `json:"featured"`
	ImageURL     string `json:"image_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func toProductResponse(images storage.Storage, p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		Category:     p.Category,
		Featured:     p.Featured,
		ImageURL:     images.URL(p.Image),
		ThumbnailURL: images.URL(p.Thumbnail),
	}
}

func toProductResponses(images storage.Storage, products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(images, &products[i]))
	}
	return out
}

// ListProducts handles GET /api/v1/products?category=skincare
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProductResponses(h.images, products))
}

// FeaturedProducts handles GET /api/v1/products/featured
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FeaturedProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProductResponses(h.images, products))
}

// GetProduct handles GET /api/v1/products/{productID}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProductResponse(h.images, product))
}
