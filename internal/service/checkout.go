package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/repository"
	"github.com/utafrali/glamstore/internal/session"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// CheckoutSummary is what the review step shows before placing an order.
type CheckoutSummary struct {
	Items      []domain.CartLine `json:"items"`
	ItemCount  int               `json:"item_count"`
	TotalCents int64             `json:"total_cents"`
}

// CheckoutService turns carts into orders. Payment is simulated: every
// placed order completes immediately.
type CheckoutService struct {
	orderRepo repository.OrderRepository
	sessions  session.Store
	logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(orderRepo repository.OrderRepository, sessions session.Store, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		sessions:  sessions,
		logger:    logger,
	}
}

// Summary returns the checkout review for the session's cart.
func (s *CheckoutService) Summary(ctx context.Context, sess *session.Session) (*CheckoutSummary, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}
	if sess.Cart.IsEmpty() {
		return nil, apperrors.CartEmpty()
	}

	order := domain.NewOrderFromCart("", sess.UserID, sess.UserName, sess.Cart, time.Time{})

	items := make([]domain.CartLine, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.CartLine{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Image:      sess.Cart[item.ProductID].Image,
			Quantity:   item.Quantity,
		})
	}

	return &CheckoutSummary{
		Items:      items,
		ItemCount:  sess.Cart.ItemCount(),
		TotalCents: sess.Cart.TotalCents(),
	}, nil
}

// PlaceOrder writes an immutable order from the cart and clears the cart.
// An empty cart is rejected before anything is written.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sess *session.Session) (*domain.Order, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}
	if sess.Cart.IsEmpty() {
		return nil, apperrors.CartEmpty()
	}

	order := domain.NewOrderFromCart(uuid.New().String(), sess.UserID, sess.UserName, sess.Cart, time.Now().UTC())

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The order is already durable, so the cart clear is a plain save. If a
	// concurrent tab raced us, last writer wins and the cleared cart stands.
	sess.Cart = domain.Cart{}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("clear cart after checkout: %w", err)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", sess.UserID),
		slog.Int64("total_cents", order.TotalCents),
		slog.Int("items", len(order.Items)),
	)

	return &order, nil
}

// ListOrders returns the signed-in user's order history, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, sess *session.Session) ([]domain.Order, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}

	orders, err := s.orderRepo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// GetOrder returns one of the signed-in user's orders. Orders belonging to
// other users are reported as not found.
func (s *CheckoutService) GetOrder(ctx context.Context, sess *session.Session, orderID string) (*domain.Order, error) {
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthorized("login required")
	}
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if order.UserID != sess.UserID {
		return nil, apperrors.NotFound("order", orderID)
	}

	return order, nil
}
