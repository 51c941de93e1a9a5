package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/internal/storage"
	"github.com/utafrali/glamstore/pkg/httputil"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// AdminHandler handles catalog management endpoints. Routes using it sit
// behind RequireAdmin.
type AdminHandler struct {
	service *service.CatalogService
	images  storage.Storage
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.CatalogService, images storage.Storage, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		images:  images,
		logger:  logger,
	}
}

// parseImageUpload extracts the optional "image" part from a multipart form.
// The caller owns closing the returned file via the cleanup func.
func (h *AdminHandler) parseImageUpload(r *http.Request) (*service.ImageUpload, func(), error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, nil, apperrors.InvalidInput("invalid image upload")
	}

	upload := &service.ImageUpload{
		Filename: header.Filename,
		Reader:   file,
	}

	return upload, func() { file.Close() }, nil
}

// CreateProduct handles POST /api/v1/admin/products (multipart/form-data)
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes)
	if err := r.ParseMultipartForm(storage.MaxUploadBytes); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid multipart form or file too large"))
		return
	}

	priceCents, err := strconv.ParseInt(r.FormValue("price_cents"), 10, 64)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("price_cents must be an integer"))
		return
	}

	upload, cleanup, err := h.parseImageUpload(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	defer cleanup()

	product, err := h.service.CreateProduct(r.Context(), service.CreateProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		PriceCents:  priceCents,
		Category:    r.FormValue("category"),
		Featured:    r.FormValue("featured") == "true",
		Image:       upload,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toProductResponse(h.images, product))
}

// UpdateProduct handles PUT /api/v1/admin/products/{productID} (multipart/form-data)
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes)
	if err := r.ParseMultipartForm(storage.MaxUploadBytes); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid multipart form or file too large"))
		return
	}

	input := service.UpdateProductInput{}

	if r.Form.Has("name") {
		name := r.FormValue("name")
		input.Name = &name
	}
	if r.Form.Has("description") {
		description := r.FormValue("description")
		input.Description = &description
	}
	if r.Form.Has("price_cents") {
		priceCents, err := strconv.ParseInt(r.FormValue("price_cents"), 10, 64)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("price_cents must be an integer"))
			return
		}
		input.PriceCents = &priceCents
	}
	if r.Form.Has("category") {
		category := r.FormValue("category")
		input.Category = &category
	}
	if r.Form.Has("featured") {
		featured := r.FormValue("featured") == "true"
		input.Featured = &featured
	}

	upload, cleanup, err := h.parseImageUpload(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	defer cleanup()
	input.Image = upload

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProductResponse(h.images, product))
}

// DeleteProduct handles DELETE /api/v1/admin/products/{productID}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
