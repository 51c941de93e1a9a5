package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/repository"
	"github.com/utafrali/glamstore/internal/session"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
	MaxQuantityPerItem = 100
	// MaxLinesPerCart is the maximum number of distinct products allowed in a cart.
	MaxLinesPerCart = 50
)

// CartService implements cart operations on the session. Every operation
// except Count requires a signed-in session. All mutations use optimistic
// locking so concurrent tabs cannot silently drop each other's changes.
type CartService struct {
	productRepo repository.ProductRepository
	sessions    session.Store
	logger      *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(productRepo repository.ProductRepository, sessions session.Store, logger *slog.Logger) *CartService {
	return &CartService{
		productRepo: productRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// GetCart returns the signed-in session's cart.
func (s *CartService) GetCart(ctx context.Context, sess *session.Session) (domain.Cart, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}
	if sess.Cart == nil {
		return domain.Cart{}, nil
	}
	return sess.Cart, nil
}

// Count returns the sum of quantities across the cart. It is the one cart
// read open to guests: the badge query defaults to 0 for a fresh visitor.
func (s *CartService) Count(ctx context.Context, sess *session.Session) int {
	return sess.Cart.ItemCount()
}

// AddItem adds a product to the cart, snapshotting its name, price, and
// image from the catalog. Adding an existing product merges quantities; the
// original snapshot is kept, so a catalog change after the first add does
// not reprice the line.
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, productID string, quantity int) (domain.Cart, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product for cart: %w", err)
	}

	expectedVersion := sess.Version

	if sess.Cart == nil {
		sess.Cart = domain.Cart{}
	}

	line, exists := sess.Cart[productID]
	if exists {
		newQty := line.Quantity + quantity
		if newQty > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
		line.Quantity = newQty
		sess.Cart[productID] = line
	} else {
		if len(sess.Cart) >= MaxLinesPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d products", MaxLinesPerCart))
		}
		sess.Cart[productID] = domain.CartLine{
			ProductID:  productID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Image:      product.Image,
			Quantity:   quantity,
		}
	}

	if err := s.saveCart(ctx, sess, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sess.ID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return sess.Cart, nil
}

// UpdateQuantity sets the quantity of a product already in the cart. A
// quantity of zero or less removes the line outright, so carts never hold a
// non-positive quantity.
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, productID string, quantity int) (domain.Cart, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	expectedVersion := sess.Version

	line, exists := sess.Cart[productID]
	if !exists {
		return nil, apperrors.NotFound("cart item", productID)
	}

	if quantity <= 0 {
		delete(sess.Cart, productID)
	} else {
		line.Quantity = quantity
		sess.Cart[productID] = line
	}

	if err := s.saveCart(ctx, sess, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("session_id", sess.ID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return sess.Cart, nil
}

// RemoveItem removes a product from the cart.
func (s *CartService) RemoveItem(ctx context.Context, sess *session.Session, productID string) (domain.Cart, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	expectedVersion := sess.Version

	if _, exists := sess.Cart[productID]; !exists {
		return nil, apperrors.NotFound("cart item", productID)
	}

	delete(sess.Cart, productID)

	if err := s.saveCart(ctx, sess, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sess.ID),
		slog.String("product_id", productID),
	)

	return sess.Cart, nil
}

func (s *CartService) saveCart(ctx context.Context, sess *session.Session, expectedVersion int64) error {
	err := s.sessions.SaveIfVersion(ctx, sess, expectedVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict("cart was modified concurrently, please retry")
		}
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
