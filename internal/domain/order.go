package domain

import (
	"sort"
	"time"
)

// OrderStatusCompleted is the only status the simulated payment flow
// produces. Orders are immutable once written.
const OrderStatusCompleted = "completed"

// OrderItem is a purchased line frozen at checkout time. SubtotalCents is
// persisted with the line so the stored order is self-contained.
type OrderItem struct {
	ProductID     string `bson:"product_id" json:"product_id"`
	Name          string `bson:"name" json:"name"`
	PriceCents    int64  `bson:"price_cents" json:"price_cents"`
	Quantity      int    `bson:"quantity" json:"quantity"`
	SubtotalCents int64  `bson:"subtotal_cents" json:"subtotal_cents"`
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID         string      `bson:"_id" json:"id"`
	UserID     string      `bson:"user_id" json:"user_id"`
	UserName   string      `bson:"user_name" json:"user_name"`
	Items      []OrderItem `bson:"items" json:"items"`
	TotalCents int64       `bson:"total_cents" json:"total_cents"`
	Status     string      `bson:"status" json:"status"`
	CreatedAt  time.Time   `bson:"created_at" json:"created_at"`
}

// NewOrderFromCart builds an order from the given cart. Items are sorted by
// product ID so the order contents are deterministic.
func NewOrderFromCart(id, userID, userName string, cart Cart, now time.Time) Order {
	items := make([]OrderItem, 0, len(cart))
	for _, line := range cart {
		items = append(items, OrderItem{
			ProductID:     line.ProductID,
			Name:          line.Name,
			PriceCents:    line.PriceCents,
			Quantity:      line.Quantity,
			SubtotalCents: line.PriceCents * int64(line.Quantity),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})

	return Order{
		ID:         id,
		UserID:     userID,
		UserName:   userName,
		Items:      items,
		TotalCents: cart.TotalCents(),
		Status:     OrderStatusCompleted,
		CreatedAt:  now,
	}
}
