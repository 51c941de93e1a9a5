package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/repository"
	"github.com/utafrali/glamstore/internal/storage"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// MaxPriceCents is the maximum price (1,000,000.00) allowed per product.
const MaxPriceCents = 1_000_000_00

// featuredLimit caps the home-page featured selection.
const featuredLimit = 4

// ImageUpload carries an uploaded product image.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Featured    bool
	Image       *ImageUpload
}

// UpdateProductInput holds the parameters for updating a product. Nil
// pointers leave the corresponding field unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Category    *string
	Featured    *bool
	Image       *ImageUpload
}

// CatalogService implements product browsing and admin catalog management.
type CatalogService struct {
	productRepo repository.ProductRepository
	images      storage.Storage
	logger      *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, images storage.Storage, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		images:      images,
		logger:      logger,
	}
}

// ListProducts returns products, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{Category: category})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// FeaturedProducts returns at most four products flagged for the home page.
func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	if len(products) > featuredLimit {
		products = products[:featuredLimit]
	}
	return products, nil
}

// GetProduct returns a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// CreateProduct adds a new catalog product, storing its image if provided.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}
	if input.PriceCents <= 0 {
		return nil, apperrors.InvalidInput("price must be greater than 0")
	}
	if input.PriceCents > MaxPriceCents {
		return nil, apperrors.InvalidInput(fmt.Sprintf("price must not exceed %d cents", MaxPriceCents))
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Category:    input.Category,
		Featured:    input.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.Image != nil {
		stored, err := s.images.Save(ctx, input.Image.Filename, input.Image.Reader)
		if err != nil {
			return nil, fmt.Errorf("save product image: %w", err)
		}
		product.Image = stored.Filename
		product.Thumbnail = stored.Thumbnail
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if product.Image != "" {
			s.removeImage(ctx, product.Image)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// UpdateProduct applies a partial update. A new image replaces and removes
// the old one.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name must not be empty")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents <= 0 {
			return nil, apperrors.InvalidInput("price must be greater than 0")
		}
		if *input.PriceCents > MaxPriceCents {
			return nil, apperrors.InvalidInput(fmt.Sprintf("price must not exceed %d cents", MaxPriceCents))
		}
		product.PriceCents = *input.PriceCents
	}
	if input.Category != nil {
		if *input.Category == "" {
			return nil, apperrors.InvalidInput("category must not be empty")
		}
		product.Category = *input.Category
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	oldImage := ""
	if input.Image != nil {
		stored, err := s.images.Save(ctx, input.Image.Filename, input.Image.Reader)
		if err != nil {
			return nil, fmt.Errorf("save product image: %w", err)
		}
		oldImage = product.Image
		product.Image = stored.Filename
		product.Thumbnail = stored.Thumbnail
	}

	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if input.Image != nil {
			s.removeImage(ctx, product.Image)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	if oldImage != "" {
		s.removeImage(ctx, oldImage)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// DeleteProduct removes a product and its stored image.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product for delete: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if product.Image != "" {
		s.removeImage(ctx, product.Image)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}

func (s *CatalogService) removeImage(ctx context.Context, filename string) {
	if err := s.images.Delete(ctx, filename); err != nil {
		s.logger.WarnContext(ctx, "failed to remove product image",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
	}
}
